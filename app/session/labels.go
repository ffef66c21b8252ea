package session

import "strings"

// MaxHotkeys is the number of labels reachable through the digit keys 1-9.
const MaxHotkeys = 9

// ParseLabelSet turns the label editor text into an ordered label set:
// one label per line, trimmed, blank lines dropped, duplicates kept once.
func ParseLabelSet(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	labels := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		label := strings.TrimSpace(line)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}

// HotkeyLabel returns the label bound to digit key n (1-9).
func HotkeyLabel(labels []string, n int) (string, bool) {
	if n < 1 || n > MaxHotkeys || n > len(labels) {
		return "", false
	}
	return labels[n-1], true
}
