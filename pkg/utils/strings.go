package utils

import "strings"

// ParseCSV separa valores de query string como "age,gender" ignorando vazios
func ParseCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	values := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, item)
		}
	}

	return values
}
