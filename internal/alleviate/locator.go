package alleviate

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// phoneField locates the phone-number input for the default site row on the
// settings page. The settings grid renders one phone input per site row with
// no stable ids, so the target is identified structurally: among the phone
// inputs in document order, pick the first whose value is still empty. This
// is page-structure coupling to the platform's current markup and nothing
// more; it is kept behind this single function so a markup change touches
// nothing else.
func (s *playwrightSession) phoneField() (playwright.Locator, error) {
	inputs := s.page.Locator(`input[type="tel"], input[name*="phone" i]`)

	count, err := inputs.Count()
	if err != nil {
		return nil, fmt.Errorf("enumerate phone inputs: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("no phone input found on settings page")
	}

	values := make([]string, 0, count)
	for i := 0; i < count; i++ {
		v, err := inputs.Nth(i).InputValue()
		if err != nil {
			return nil, fmt.Errorf("read phone input %d: %w", i, err)
		}
		values = append(values, v)
	}

	return inputs.Nth(pickPhoneFieldIndex(values)), nil
}

// pickPhoneFieldIndex selects the first input whose value is empty, falling
// back to the first input when every row already holds a number.
func pickPhoneFieldIndex(values []string) int {
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			return i
		}
	}
	return 0
}
