package pipeline

import "strings"

// ParseLine tokenizes one CSV line into its fields. It understands quoted
// fields with embedded commas and doubled quotes, and is deliberately
// lenient: an unterminated quote swallows the rest of the line into the
// final field instead of failing. encoding/csv is too strict for the bank
// exports this has to accept.
//
// Every separator produces a field boundary, so a trailing comma yields a
// trailing empty field.
func ParseLine(line string) []string {
	var fields []string
	var field strings.Builder
	isStart := true
	inQuotes := false

	for c := 0; c < len(line); c++ {
		char := line[c]
		if isStart {
			if char == ',' {
				fields = append(fields, field.String())
				continue
			}
			isStart = false
			if char == '"' {
				inQuotes = true
				continue
			}
			field.WriteByte(char)
		} else if inQuotes && char == '"' && c+1 < len(line) && line[c+1] == '"' {
			field.WriteByte('"')
			c++
		} else if inQuotes && char == '"' && (c+1 == len(line) || line[c+1] == ',') {
			fields = append(fields, field.String())
			field.Reset()
			c++
			isStart = true
			inQuotes = false
		} else if !inQuotes && char == ',' {
			fields = append(fields, field.String())
			field.Reset()
			isStart = true
			inQuotes = false
		} else {
			field.WriteByte(char)
		}
	}

	// Flush whatever is pending: the last unquoted field, an unterminated
	// quoted field, or the empty field after a trailing separator.
	if !isStart || len(line) == 0 || line[len(line)-1] == ',' {
		fields = append(fields, field.String())
	}

	return fields
}
