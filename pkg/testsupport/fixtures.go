// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-knock/pkg/form"
)

// AssertContains fails the test when any fragment is missing from got.
func AssertContains(t testing.TB, got string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, got)
		}
	}
}

// AssertNotContains fails the test when any fragment is present in got.
func AssertNotContains(t testing.TB, got string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(got, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, got)
		}
	}
}

// AssertEqual fails the test with a cmp diff when want and got differ.
func AssertEqual(t testing.TB, want, got any, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

// FormValues encodes element answers the way the HTML form posts them. String
// slices become repeated namespace[name][] keys.
func FormValues(answers map[string]any) url.Values {
	names := make([]string, 0, len(answers))
	for name := range answers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := url.Values{}
	for _, name := range names {
		switch v := answers[name].(type) {
		case []string:
			key := form.InputName(form.Namespace, name, true)
			for _, item := range v {
				out.Add(key, item)
			}
		case string:
			out.Set(form.InputName(form.Namespace, name, false), v)
		}
	}
	return out
}
