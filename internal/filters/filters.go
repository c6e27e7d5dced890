// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/tfctl/awssso/internal/attrs"
)

// EnvDelim overrides the filter separator for values that contain commas.
const EnvDelim = "AWSSSO_FILTER_DELIM"

// filterRegex splits an expression into key, optional (negated) operator
// and target: "name", "name=value", "size!>100".
var filterRegex = regexp.MustCompile(`^([^!?=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// Delim returns the separator between filter expressions, "," unless
// overridden by EnvDelim.
func Delim() string {
	if d, ok := os.LookupEnv(EnvDelim); ok && d != "" {
		return d
	}
	return ","
}

// ParseFilter parses a single filter expression.
func ParseFilter(filterSpec string) (Filter, error) {
	filterSpec = strings.TrimSpace(filterSpec)
	parts := filterRegex.FindStringSubmatch(filterSpec)
	if parts == nil {
		return Filter{}, fmt.Errorf("invalid filter %q", filterSpec)
	}

	key := strings.TrimSpace(parts[1])
	if key == "" {
		return Filter{}, fmt.Errorf("invalid filter %q: empty key", filterSpec)
	}

	operand := parts[2]
	negate := strings.HasPrefix(operand, "!")
	operand = strings.TrimPrefix(operand, "!")

	return Filter{
		Key:     key,
		Negate:  negate,
		Operand: operand,
		Value:   parts[3],
	}, nil
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed expressions are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	for _, filterSpec := range strings.Split(spec, Delim()) {
		if strings.TrimSpace(filterSpec) == "" {
			continue
		}

		filter, err := ParseFilter(filterSpec)
		if err != nil {
			log.WithError(err).Error("skipping filter")
			continue
		}
		filters = append(filters, filter)
	}

	return filters
}

// FilterDataset keeps the rows of candidates, a JSON array, that match every
// filter in spec and projects each onto attrs keyed by OutputKey.
// Transforms are left to the caller.
func FilterDataset(candidates gjson.Result, attrs attrs.AttrList, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)

	results := []map[string]interface{}{}
	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, attrs, filters) {
			continue
		}

		row := make(map[string]interface{}, len(attrs))
		for _, attr := range attrs {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = candidate.Get(attr.Key).Value()
		}
		results = append(results, row)
	}

	return results
}

// applyFilters returns true if the candidate row matches all filters. A
// filter key names an attr by its OutputKey or, failing that, is used as a
// path into the row.
func applyFilters(candidate gjson.Result, attrs attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key := filter.Key
		for _, attr := range attrs {
			if attr.OutputKey == filter.Key {
				key = attr.Key
				break
			}
		}

		value := candidate.Get(key).Value()
		if value == nil {
			return false
		}

		// A bare key only checks presence.
		if filter.Operand == "" {
			continue
		}

		var result bool
		switch v := value.(type) {
		case string:
			result = checkStringOperand(v, filter)
		case bool:
			result = checkStringOperand(strconv.FormatBool(v), filter)
		case float64:
			result = checkNumericOperand(v, filter)
		default:
			result = checkContainsOperand(value, filter)
		}

		if !result {
			return false
		}
	}

	return true
}

// checkContainsOperand evaluates a membership filter (operand '@') against
// array or object values.
func checkContainsOperand(value interface{}, filter Filter) bool {
	if filter.Operand != "@" {
		log.Error(fmt.Sprintf("unsupported operand for %T: %s", value, filter.Operand))
		return false
	}

	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if fmt.Sprint(item) == filter.Value {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]any:
		_, found := val[filter.Value]
		return found != filter.Negate
	default:
		log.Error(fmt.Sprintf("unsupported type for contains filtering: %T", value))
		return false
	}
}

// checkNumericOperand compares value with the filter value numerically.
// Supported operands are =, > and <, each optionally negated.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Error("invalid numeric value: " + filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Error("unsupported numeric operand: " + filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison against value.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
