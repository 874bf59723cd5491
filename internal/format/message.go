package format

import (
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"

	"crediario/internal/core"
)

// CollectionMessage fills a collection template for the customer. {nome},
// {valor} and {data} are replaced wherever they appear; any other {tag} is
// written back verbatim.
func CollectionMessage(template string, c core.Customer, asOf time.Time) string {
	values := map[string]string{
		"nome":  c.Name,
		"valor": Currency(core.TotalOwed(c, asOf)),
		"data":  Date(c.DueDate),
	}
	return fasttemplate.ExecuteFuncString(template, "{", "}", func(w io.Writer, tag string) (int, error) {
		if v, ok := values[tag]; ok {
			return w.Write([]byte(v))
		}
		return w.Write([]byte("{" + tag + "}"))
	})
}

// WhatsAppURL builds a wa.me link for the phone, adding Brazil's country code
// when it is missing.
func WhatsAppURL(phone, message string) string {
	n := Digits(phone)
	if !strings.HasPrefix(n, "55") {
		n = "55" + n
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + n + "?text=" + text
}
