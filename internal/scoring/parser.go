package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const debugMarker = "\n\n[DEBUG: Raw LLM output]\n"

var digitsRe = regexp.MustCompile(`[0-9]+`)

// decode is swapped in tests to simulate decoder faults.
var decode = decodeFields

var scoreKeys = map[string]bool{
	"educationscore":  true,
	"skillsscore":     true,
	"experiencescore": true,
	"finalscore":      true,
}

// ParseResponse turns a raw model reply into a Record. It never fails: empty
// replies, missing keys and internal faults all produce a record whose
// OverallExplanation carries the raw reply for diagnosis.
func ParseResponse(raw string) (record Record) {
	if strings.TrimSpace(raw) == "" {
		return Record{OverallExplanation: "LLM error or empty response." + debugMarker + raw}
	}

	defer func() {
		if r := recover(); r != nil {
			record = parseFailure(fmt.Errorf("%v", r), raw)
		}
	}()

	fields := make(map[string]any)
	for _, line := range strings.Split(raw, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		key = normalizeKey(key)
		value = strings.TrimSpace(value)

		if scoreKeys[key] {
			fields[key] = parseScore(value)
			continue
		}
		fields[key] = value
	}

	if err := decode(fields, &record); err != nil {
		return parseFailure(err, raw)
	}

	if record.NoScores() {
		record.OverallExplanation += debugMarker + raw
	}

	return record
}

// ProviderFailure is the record reported when the LLM call itself failed.
func ProviderFailure(err error) Record {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Record{OverallExplanation: "LLM error or empty response." + debugMarker + msg}
}

func decodeFields(fields map[string]any, record *Record) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  record,
		TagName: "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(fields); err != nil {
		return fmt.Errorf("decode reply fields: %w", err)
	}
	return nil
}

// parseScore returns the first run of digits in value as is. Out of range
// replies are kept so they stay visible; an overflowing run saturates.
func parseScore(value string) int {
	digits := digitsRe.FindString(value)
	if digits == "" {
		return 0
	}

	// Only range errors are possible here, and Atoi then returns the
	// saturated value.
	n, _ := strconv.Atoi(digits)
	return n
}

func parseFailure(err error, raw string) Record {
	return Record{OverallExplanation: "Exception during parsing: " + err.Error() + debugMarker + raw}
}
