package logger

import (
	"regexp"
	"strings"

	"github.com/ncobase/commerce/config"
	"github.com/sirupsen/logrus"
)

var (
	emailPattern = regexp.MustCompile(`\b([A-Za-z0-9._%+-])[A-Za-z0-9._%+-]*@([A-Za-z0-9.-]+\.[A-Za-z]{2,})\b`)
	jwtPattern   = regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\b`)
)

// Desensitizer is a logrus hook masking sensitive fields and values
type Desensitizer struct {
	fields map[string]struct{}
	mask   string
}

// NewDesensitizer creates a new desensitizer instance
func NewDesensitizer(cfg *config.Desensitization) *Desensitizer {
	maskChar := cfg.MaskChar
	if maskChar == "" {
		maskChar = "*"
	}
	length := cfg.FixedMaskLength
	if length <= 0 {
		length = 6
	}

	d := &Desensitizer{
		fields: make(map[string]struct{}, len(cfg.SensitiveFields)),
		mask:   strings.Repeat(maskChar, length),
	}
	for _, f := range cfg.SensitiveFields {
		d.fields[normalizeField(f)] = struct{}{}
	}
	return d
}

// Levels implements logrus.Hook
func (d *Desensitizer) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook
func (d *Desensitizer) Fire(entry *logrus.Entry) error {
	for key, value := range entry.Data {
		entry.Data[key] = d.desensitize(key, value)
	}
	entry.Message = d.desensitizeString(entry.Message)
	return nil
}

func (d *Desensitizer) desensitize(key string, value any) any {
	if d.isSensitiveField(key) {
		return d.mask
	}
	switch v := value.(type) {
	case string:
		return d.desensitizeString(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = d.desensitize(k, item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, item := range v {
			if d.isSensitiveField(k) {
				out[k] = d.mask
				continue
			}
			out[k] = d.desensitizeString(item)
		}
		return out
	default:
		return value
	}
}

func (d *Desensitizer) isSensitiveField(key string) bool {
	_, ok := d.fields[normalizeField(key)]
	return ok
}

// desensitizeString masks bearer tokens and the local part of email addresses
func (d *Desensitizer) desensitizeString(s string) string {
	if s == "" {
		return s
	}
	s = jwtPattern.ReplaceAllString(s, d.mask)
	return emailPattern.ReplaceAllString(s, "${1}"+d.mask+"@${2}")
}

func normalizeField(f string) string {
	return strings.ReplaceAll(strings.ToLower(f), "_", "")
}
