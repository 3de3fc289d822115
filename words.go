package main

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed words.txt
var builtinWords string

// parseWords reads one word per line, skipping blanks, # comments and
// repeats. Order of first appearance is kept.
func parseWords(text string) []string {
	seen := make(map[string]bool)
	words := make([]string, 0, 256)

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		if seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}

	return words
}

func loadWords(path string) ([]string, error) {
	text := builtinWords

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading word list: %w", err)
		}
		text = string(data)
	}

	words := parseWords(text)
	if len(words) < boardSize {
		return nil, fmt.Errorf("%w: need %d distinct words, got %d", ErrWordListTooShort, boardSize, len(words))
	}

	return words, nil
}
