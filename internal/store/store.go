// Package store classifies affiliate links into a closed set of retailer tags.
package store

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type Tag string

const (
	Amazon       Tag = "amazon"
	Shopee       Tag = "shopee"
	MercadoLivre Tag = "mercadolivre"
	Magalu       Tag = "magalu"
	AliExpress   Tag = "aliexpress"
	Other        Tag = "other"
)

// Ordered rules, first match wins.
var rules = []struct {
	keywords []string
	tag      Tag
}{
	{[]string{"amazon", "amzn"}, Amazon},
	{[]string{"shopee"}, Shopee},
	{[]string{"mercadolivre", "mercadolibre"}, MercadoLivre},
	{[]string{"magalu", "magazineluiza"}, Magalu},
	{[]string{"aliexpress"}, AliExpress},
}

// Classify maps an affiliate link to its retailer tag by case-insensitive
// substring matching. Total: anything unrecognized, including the empty
// string, is Other.
func Classify(link string) Tag {
	lower := strings.ToLower(link)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.tag
			}
		}
	}
	return Other
}

// Parse validates a raw string against the closed tag set.
func Parse(s string) (Tag, error) {
	switch t := Tag(s); t {
	case Amazon, Shopee, MercadoLivre, Magalu, AliExpress, Other:
		return t, nil
	}
	return "", fmt.Errorf("unknown store tag %q", s)
}

// Scan validates tags coming back from the database.
func (t *Tag) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into store.Tag", src)
	}

	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Tag) Value() (driver.Value, error) {
	if _, err := Parse(string(t)); err != nil {
		return nil, err
	}
	return string(t), nil
}
