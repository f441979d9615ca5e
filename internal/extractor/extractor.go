package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/gracelabs/verification-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Per-field pattern lists, tried in priority order. The first pattern that
// matches wins, regardless of where later patterns would match in the text.
var (
	barcodePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{5}\.\d{5}[. ]\d{5}\.\d{6}[. ]\d{5}\.\d{6}[. ]\d[. ]\d{14}`),
		regexp.MustCompile(`\b(\d{47})\b`),
		regexp.MustCompile(`\b(\d{44})\b`),
		regexp.MustCompile(`(?i)c[oó]digo\D*?(\d{44,47})`),
	}

	pixKeyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)chave\s*(?:pix)?\s*:?\s*([A-Za-z0-9@._\-]{20,77})`),
		regexp.MustCompile(`(?i)pix\s*:?\s*([A-Za-z0-9@._\-]{20,77})`),
		regexp.MustCompile(`([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`),
	}

	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`R\$\s*(\d{1,3}(?:\.\d{3})*(?:,\d{2})?)`),
		regexp.MustCompile(`(\d{1,3}(?:\.\d{3})*(?:,\d{2})?)\s*reais`),
		regexp.MustCompile(`(?i)valor\D{0,10}?(\d{1,3}(?:\.\d{3})*,\d{2})`),
		regexp.MustCompile(`(?i)total\D{0,10}?(\d{1,3}(?:\.\d{3})*,\d{2})`),
		regexp.MustCompile(`\b(\d{1,3}(?:\.\d{3})*,\d{2})\b`),
	}

	payeePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)benefici[aá]rio\s*:?\s*([A-Za-zÀ-ÿ0-9&.\- ]{5,60})`),
		regexp.MustCompile(`(?i)favorecido\s*:?\s*([A-Za-zÀ-ÿ0-9&.\- ]{5,60})`),
		regexp.MustCompile(`(?i)recebedor\s*:?\s*([A-Za-zÀ-ÿ0-9&.\- ]{5,60})`),
	}

	dueDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)vencimento\D{0,10}?(\d{2}/\d{2}/\d{4})`),
		regexp.MustCompile(`(?i)validade\D{0,10}?(\d{2}/\d{2}/\d{4})`),
		regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`),
	}
)

// Pressure vocabulary commonly seen in scam charges. A hit only flags the
// document; scoring it is the fraud detector's job.
var urgencyWords = []string{
	"urgente", "imediato", "bloqueio", "suspensão",
	"multa", "juros", "desconto", "promoção", "expira hoje",
}

const (
	minReadableChars  = 50
	mediumQualityLen  = 120
	strangeCharsRatio = 0.10
)

// Extractor turns raw OCR text or a raw PIX payload into a normalized
// ExtractedDocument. It never fails: fields that cannot be matched are simply
// left absent, because partial extraction is the common case.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(rawText string, kind models.SourceKind) models.ExtractedDocument {
	doc := models.ExtractedDocument{
		RawText:      rawText,
		ImageQuality: models.QualityGood,
	}

	switch kind {
	case models.SourcePixText:
		e.extractPixPayload(&doc, rawText)
	default:
		e.extractDocumentFields(&doc, rawText)
	}

	e.assessQuality(&doc, rawText)

	logrus.Debugf("extraction finished: quality=%s payee=%q amount_present=%t",
		doc.ImageQuality, doc.PayeeName, doc.Amount != nil)

	return doc
}

func (e *Extractor) extractDocumentFields(doc *models.ExtractedDocument, text string) {
	if m := firstMatch(barcodePatterns, text); m != "" {
		doc.Barcode = digitsOnly(m)
	}
	if m := firstMatch(pixKeyPatterns, text); m != "" {
		doc.PixKey = m
	}
	if m := firstMatch(amountPatterns, text); m != "" {
		if v, ok := parseRealAmount(m); ok {
			doc.Amount = &v
		}
	}
	if m := firstMatch(payeePatterns, text); m != "" {
		doc.PayeeName = strings.TrimSpace(firstLine(m))
	}
	if m := firstMatch(dueDatePatterns, text); m != "" {
		doc.DueDate = m
	}
}

// extractPixPayload walks an EMV-style tag/length/value payload: two-digit
// tag, two-digit length, then length bytes of value. Unknown tags are
// ignored; malformed segments are skipped rather than failing the parse.
func (e *Extractor) extractPixPayload(doc *models.ExtractedDocument, payload string) {
	payload = strings.TrimSpace(payload)

	for i := 0; i+4 <= len(payload); {
		tag := payload[i : i+2]
		length, err := strconv.Atoi(payload[i+2 : i+4])
		if !isDigits(tag) || err != nil || length < 0 || i+4+length > len(payload) {
			i++
			continue
		}

		value := payload[i+4 : i+4+length]

		switch {
		case tag == "54":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				doc.Amount = &v
			}
		case tag == "59":
			doc.PayeeName = strings.TrimSpace(value)
		case tag >= "26" && tag <= "51":
			// Merchant account information template; the key sits in
			// the nested field 01.
			if key := pixKeyFromTemplate(value); key != "" {
				doc.PixKey = key
			}
		}

		i += 4 + length
	}
}

func pixKeyFromTemplate(template string) string {
	for i := 0; i+4 <= len(template); {
		tag := template[i : i+2]
		length, err := strconv.Atoi(template[i+2 : i+4])
		if !isDigits(tag) || err != nil || length < 0 || i+4+length > len(template) {
			i++
			continue
		}

		if tag == "01" {
			return strings.TrimSpace(template[i+4 : i+4+length])
		}

		i += 4 + length
	}

	return ""
}

func (e *Extractor) assessQuality(doc *models.ExtractedDocument, text string) {
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)

	if len(runes) < minReadableChars {
		doc.ImageQuality = models.QualityPoor
	} else if len(runes) < mediumQualityLen {
		doc.ImageQuality = models.QualityMedium
	}

	if len(runes) > 0 {
		strange := 0
		for _, r := range runes {
			if !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r) &&
				!strings.ContainsRune(`.,;:!?@#$%&*()_+-=[]{}|\"'<>/`, r) {
				strange++
			}
		}
		if float64(strange) > float64(len(runes))*strangeCharsRatio {
			doc.PossiblyTampered = true
			doc.ImageQuality = models.QualityPoor
		}
	}

	lower := strings.ToLower(trimmed)
	for _, word := range urgencyWords {
		if strings.Contains(lower, word) {
			doc.SuspiciousLanguage = true
			break
		}
	}
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(m[0])
	}

	return ""
}

// parseRealAmount converts a Brazilian-formatted amount ("1.234,56") into a
// float64.
func parseRealAmount(raw string) (float64, bool) {
	clean := strings.ReplaceAll(raw, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}

	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return len(s) > 0
}
