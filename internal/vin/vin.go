package vin

import (
	"math/rand"
	"sort"
)

// vinChars is the VIN alphabet: I, O and Q are excluded to avoid confusion
// with 1 and 0.
const vinChars = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"

const digits = "0123456789"

// modelYearChars covers model years 2020-2029 plus older numeric codes.
const modelYearChars = "LMNPRSTVWXY123456789"

// wmiOptions are world manufacturer identifiers for common US-market makes.
var wmiOptions = []string{
	"1FA", "1FT", "1FM", "1FD", "2FA", "3FA", "1G1", "1GC", "1GT",
	"2G1", "3G1", "JN1", "JM1", "WBA", "WDB", "WAU", "5YJ",
}

// Generator produces realistic-looking 17-character VINs from an explicit
// random source.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator drawing from rng.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate returns one VIN: manufacturer identifier, 5-char descriptor
// section, check character, model year, plant code and a 6-digit sequential
// suffix.
func (g *Generator) Generate() string {
	buf := make([]byte, 0, 17)
	buf = append(buf, wmiOptions[g.rng.Intn(len(wmiOptions))]...)
	for i := 0; i < 5; i++ {
		buf = append(buf, vinChars[g.rng.Intn(len(vinChars))])
	}
	buf = append(buf, (digits + "X")[g.rng.Intn(len(digits)+1)])
	buf = append(buf, modelYearChars[g.rng.Intn(len(modelYearChars))])
	buf = append(buf, vinChars[g.rng.Intn(len(vinChars))])
	for i := 0; i < 6; i++ {
		buf = append(buf, digits[g.rng.Intn(len(digits))])
	}
	return string(buf)
}

// GenerateUnique returns exactly count distinct VINs in lexicographic order.
// Collisions are resolved by resampling; the combinatorics make the loop
// terminate almost immediately in practice.
func (g *Generator) GenerateUnique(count int) []string {
	seen := make(map[string]struct{}, count)
	for len(seen) < count {
		seen[g.Generate()] = struct{}{}
	}
	vins := make([]string, 0, count)
	for v := range seen {
		vins = append(vins, v)
	}
	sort.Strings(vins)
	return vins
}
