// Package testkit provides a JSON-scenario-driven testing framework for
// interactive sessions.
//
// Each scenario is a JSON file that describes:
//   - The catalog and cart the market starts with
//   - The lines typed at the prompts (inline or from a file)
//   - Text the session must and must not print
//   - Stock, cart and fired events expected afterwards
//
// Scenario files live next to your *_test.go files:
//
//	testdata/
//	  add_to_cart.json           ← scenario
//	  add_to_cart.in             ← typed input (optional)
//
// Example _test.go:
//
//	func TestSessions(t *testing.T) {
//	    testkit.RunDir(t, shell.Run, "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ─── Schema ───────────────────────────────────────────────────────────────────

// Scenario describes a single scripted session loaded from a JSON file.
type Scenario struct {
	// Meta
	Name        string `json:"name"`
	Description string `json:"description"`

	// Starting state
	Products []ProductFixture `json:"products"`
	Cart     []CartFixture    `json:"cart"`
	Admins   []AdminFixture   `json:"admins"`

	// Typed input. InputFileName wins when both are set.
	Input         []string `json:"input"`
	InputFileName string   `json:"inputFileName"` // relative to scenario dir

	// Output assertions
	ExpectedOutput   []string `json:"expectedOutput"`   // substrings, in order
	UnexpectedOutput []string `json:"unexpectedOutput"` // substrings that must not appear

	// State assertions, keyed by product code
	ExpectedStock  map[string]int `json:"expectedStock"`
	ExpectedCart   map[string]int `json:"expectedCart"`
	ExpectedEvents []string       `json:"expectedEvents"` // event names, in firing order
	ExpectedError  string         `json:"expectedError"`  // error code returned by the session

	// resolved at load time, not in JSON
	dir string // directory of the scenario file
}

// ProductFixture is registered in order, so the first fixture gets code 1.
type ProductFixture struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
}

type CartFixture struct {
	Code     int `json:"code"`
	Quantity int `json:"quantity"`
}

// AdminFixture is registered on top of the default administrator.
type AdminFixture struct {
	CPF    string `json:"cpf"`
	Secret string `json:"secret"`
}

// ─── Loading ──────────────────────────────────────────────────────────────────

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	return &s, nil
}

// validate performs basic sanity checks on the loaded scenario.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Input) == 0 && s.InputFileName == "" {
		return fmt.Errorf("input or inputFileName is required")
	}
	for i, p := range s.Products {
		if p.Price == "" {
			return fmt.Errorf("products[%d].price is required", i)
		}
	}
	for _, m := range []map[string]int{s.ExpectedStock, s.ExpectedCart} {
		for key := range m {
			if _, err := strconv.Atoi(key); err != nil {
				return fmt.Errorf("product code %q is not a number", key)
			}
		}
	}
	return nil
}

// InputPath returns the absolute path to the input file, resolved relative
// to the scenario file's directory. Returns "" when InputFileName is not set.
func (s *Scenario) InputPath() string {
	if s.InputFileName == "" {
		return ""
	}
	if filepath.IsAbs(s.InputFileName) {
		return s.InputFileName
	}
	return filepath.Join(s.dir, s.InputFileName)
}

// Script returns the typed input as one newline-terminated string.
func (s *Scenario) Script() (string, error) {
	if p := s.InputPath(); p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("testkit: read input %q: %w", p, err)
		}
		return string(data), nil
	}
	return strings.Join(s.Input, "\n") + "\n", nil
}

// LoadAllFromDir loads every *.json file in dir as a Scenario.
// Files that fail to parse are collected as errors, not panicked.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}
