package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Linksdao.io":                   "linksdao-io",
		"Augusta National Experience":   "augusta-national-experience",
		"kraig_hamrick_portfolio_works": "kraig_hamrick_portfolio_works",
		"  Rock & Roll's / Hall ":       "rock-and-rolls-hall",
		"../../etc/passwd":              "etc-passwd",
		"***":                           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
