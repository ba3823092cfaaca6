package stats

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/luci/go-render/render"
)

// RuleChecker compares a rendered stat value ('got') with an expected one.
type RuleChecker struct {
	name    string
	checker func(got, expected interface{}) bool
}

func nilCheck(a, b interface{}) (nilFound, eqValues bool) {
	if a == nil && b == nil {
		return true, true
	}
	if a == nil || b == nil {
		return true, false
	}
	return false, false
}

var FloatEqTest = RuleChecker{name: "floatEqTest", checker: func(a, b interface{}) bool {
	if nilFound, eq := nilCheck(a, b); nilFound {
		return eq
	}
	return a.(float64) == b.(float64)
}}

var FloatGTTest = RuleChecker{name: "floatGTTest", checker: func(a, b interface{}) bool {
	if nilFound, eq := nilCheck(a, b); nilFound {
		return eq
	}
	return a.(float64) > b.(float64)
}}

// Expected values are plain ints, rendered counters are int64.
var Int64EqTest = RuleChecker{name: "int64EqTest", checker: func(a, b interface{}) bool {
	if nilFound, eq := nilCheck(a, b); nilFound {
		return eq
	}
	return a.(int64) == int64(b.(int))
}}

var DoesNotExistTest = RuleChecker{name: "doesNotExistTest", checker: func(a, b interface{}) bool {
	return a == nil
}}

// Rule pairs a checker with the expected value passed as its second argument.
type Rule struct {
	Checker RuleChecker
	Value   interface{}
}

// VerifyStats fails t when a key in contains doesn't satisfy its rule. Only
// finagle registries are checked since other registries don't flatten histograms.
func VerifyStats(tag string, statsRegistry StatsRegistry, t *testing.T, contains map[string]Rule) {
	reg, ok := statsRegistry.(*finagleStatsRegistry)
	if !ok {
		return
	}
	rendered := reg.MarshalAll()

	keys := make([]string, 0, len(contains))
	for k := range contains {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var failures []string
	for _, key := range keys {
		rule := contains[key]
		got := rendered[key]
		if rule.Checker.checker(got, rule.Value) {
			continue
		}
		if rule.Checker.name == DoesNotExistTest.name {
			failures = append(failures, fmt.Sprintf("%s: found stat entry when there should not be one", key))
		} else {
			failures = append(failures, fmt.Sprintf("%s: got %v, expected to pass %s with %v", key, got, rule.Checker.name, rule.Value))
		}
	}
	if len(failures) > 0 {
		t.Errorf("%s: stats registry error:\n%s\nregistry: %s", tag, strings.Join(failures, "\n"), render.Render(rendered))
	}
}
