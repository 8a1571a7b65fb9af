// Package ocr turns recognised document text into invoice fields.
package ocr

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"invoicegen/internal/invoice"
)

// Fields are the values recognised in a document. Empty strings and a nil
// Amount mean nothing was found.
type Fields struct {
	CompanyName   string   `json:"company_name,omitempty"`
	ClientName    string   `json:"client_name,omitempty"`
	Email         string   `json:"email,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	InvoiceNumber string   `json:"invoice_number,omitempty"`
	Date          string   `json:"date,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
}

var (
	emailRe   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe   = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{6,}\d`)
	invoiceRe = regexp.MustCompile(`(?i:invoice)\s*(?i:no\.?|number|num|#)?\s*[:#]?\s*([A-Z0-9][A-Z0-9\-/]*\d[A-Z0-9\-/]*)`)
	isoDateRe = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	dmyDateRe = regexp.MustCompile(`\b(\d{1,2})[/.](\d{1,2})[/.](\d{4})\b`)
	moneyRe   = regexp.MustCompile(`\d{1,3}(?:[,\s]\d{3})*(?:\.\d{2})|\d+\.\d{2}`)
	totalRe   = regexp.MustCompile(`(?i)\b(grand\s+total|amount\s+due|balance\s+due|total)\b`)
	clientRe  = regexp.MustCompile(`(?i)^\s*(bill(?:ed)?\s+to|client|customer|sold\s+to)\s*:?\s*(.*)$`)
	labelRe   = regexp.MustCompile(`(?i)^\s*(invoice|date|due|tax|total|subtotal|page|tel|phone|email)\b`)
)

// ExtractFields applies best-effort heuristics to recognised text.
func ExtractFields(text string) Fields {
	var f Fields
	lines := splitLines(text)

	f.Email = emailRe.FindString(text)
	f.Phone = findPhone(text)
	if m := invoiceRe.FindStringSubmatch(text); m != nil {
		f.InvoiceNumber = m[1]
	}
	f.Date = findDate(text)
	f.Amount = findTotal(lines)
	f.ClientName = findClient(lines)
	f.CompanyName = findCompany(lines, f.ClientName)
	return f
}

// Patch maps recognised values onto template fields. The amount is reported
// but not mapped since it cannot be split into line items reliably.
func (f Fields) Patch() invoice.Patch {
	var p invoice.Patch
	set := func(v string) *string {
		if v == "" {
			return nil
		}
		return &v
	}
	p.CompanyName = set(f.CompanyName)
	p.CompanyEmail = set(f.Email)
	p.CompanyPhone = set(f.Phone)
	p.ClientName = set(f.ClientName)
	p.InvoiceNumber = set(f.InvoiceNumber)
	p.InvoiceDate = set(f.Date)
	return p
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func findPhone(text string) string {
	for _, m := range phoneRe.FindAllString(text, -1) {
		digits := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		// dates and amounts also match the pattern
		if digits >= 8 && !isoDateRe.MatchString(m) && !strings.Contains(m, ".") {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// findDate returns the first date as YYYY-MM-DD. Slash dates are read day first.
func findDate(text string) string {
	iso := isoDateRe.FindStringIndex(text)
	dmy := dmyDateRe.FindStringSubmatchIndex(text)
	if iso != nil && (dmy == nil || iso[0] < dmy[0]) {
		return text[iso[0]:iso[1]]
	}
	if dmy == nil {
		return ""
	}
	day, _ := strconv.Atoi(text[dmy[2]:dmy[3]])
	month, _ := strconv.Atoi(text[dmy[4]:dmy[5]])
	year, _ := strconv.Atoi(text[dmy[6]:dmy[7]])
	if month > 12 && day <= 12 {
		day, month = month, day
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return ""
	}
	return t.Format("2006-01-02")
}

// findTotal prefers the last amount on the last "total" line that is not a subtotal.
func findTotal(lines []string) *float64 {
	for i := len(lines) - 1; i >= 0; i-- {
		l := lines[i]
		if !totalRe.MatchString(l) || strings.Contains(strings.ToLower(l), "subtotal") {
			continue
		}
		candidates := moneyRe.FindAllString(l, -1)
		if len(candidates) == 0 && i+1 < len(lines) {
			candidates = moneyRe.FindAllString(lines[i+1], -1)
		}
		if len(candidates) == 0 {
			continue
		}
		if v, ok := parseMoney(candidates[len(candidates)-1]); ok {
			return &v
		}
	}
	return nil
}

func parseMoney(s string) (float64, bool) {
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func findClient(lines []string) string {
	for i, l := range lines {
		m := clientRe.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		if name := strings.TrimSpace(m[2]); name != "" {
			return name
		}
		if i+1 < len(lines) {
			return lines[i+1]
		}
	}
	return ""
}

// findCompany takes the first line that reads like a name: the issuer is
// normally printed at the top.
func findCompany(lines []string, client string) string {
	for _, l := range lines {
		if l == client || labelRe.MatchString(l) || clientRe.MatchString(l) {
			continue
		}
		if emailRe.MatchString(l) || moneyRe.MatchString(l) || findPhone(l) != "" {
			continue
		}
		if strings.EqualFold(l, "invoice") {
			continue
		}
		return l
	}
	return ""
}
