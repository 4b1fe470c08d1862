package linkclass

import (
	"net/url"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestClassifyProperties tests invariants that hold for any href.
func TestClassifyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	location, _ := url.Parse("https://example.org/section/index.html")

	properties.Property("root relative paths are never external", prop.ForAll(
		func(p string) bool {
			r := Classify("/"+p, location)
			return !r.External && r.Reason == ReasonSameHost
		},
		gen.RegexMatch(`^[a-z0-9]+(/[a-z0-9]+){0,4}$`),
	))

	properties.Property("excluded schemes are never external", prop.ForAll(
		func(scheme, host string) bool {
			r := Classify(scheme+":someone@"+host, location)
			return !r.External && r.Skipped()
		},
		gen.OneConstOf("mailto", "tel", "javascript", "MAILTO"),
		gen.RegexMatch(`^[a-z]{1,10}\.[a-z]{2,5}$`),
	))

	properties.Property("host case never changes classification", prop.ForAll(
		func(host string) bool {
			loc, err := url.Parse("https://" + host + "/")
			if err != nil {
				return false
			}
			return !Classify("https://"+strings.ToUpper(host)+"/x", loc).External
		},
		gen.RegexMatch(`^[a-z]{1,10}\.[a-z]{2,5}$`),
	))

	properties.Property("external results carry a foreign host", prop.ForAll(
		func(host string) bool {
			r := Classify("https://"+host+"/", location)
			if r.Host == "example.org" {
				return !r.External
			}
			return r.External && r.Reason == ReasonForeignHost && r.URL != ""
		},
		gen.RegexMatch(`^[a-z]{1,10}\.[a-z]{2,5}$`),
	))

	properties.Property("percent signs in the path keep foreign links external", prop.ForAll(
		func(before, after string) bool {
			r := Classify("https://other.org/"+before+"%"+after, location)
			return r.External && r.Host == "other.org"
		},
		gen.RegexMatch(`^[a-z0-9]{0,8}$`),
		gen.RegexMatch(`^[a-z0-9]{0,8}$`),
	))

	properties.Property("classification is deterministic", prop.ForAll(
		func(href string) bool {
			return Classify(href, location) == Classify(href, location)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
