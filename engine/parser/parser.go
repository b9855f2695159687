// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching. Verbs are lower-cased;
// the object keeps the player's casing because bank lookups are exact.
package parser

import (
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/nathoo/oreforge/types"
)

// All is the Intent.Count for "all" ("deposit all bronze ore").
const All = -1

// Verbs the engine understands.
var verbs = map[string]bool{
	"mine":       true,
	"craft":      true,
	"alch":       true,
	"deposit":    true,
	"withdraw":   true,
	"equip":      true,
	"unequip":    true,
	"activate":   true,
	"rocks":      true,
	"recipes":    true,
	"alchables":  true,
	"inventory":  true,
	"bank":       true,
	"equipment":  true,
	"skills":     true,
	"status":     true,
	"collection": true,
	"help":       true,
}

var verbAliases = map[string]string{
	// Mining
	"m":    "mine",
	"dig":  "mine",
	"pick": "mine",

	// Crafting
	"c":     "craft",
	"make":  "craft",
	"smith": "craft",
	"forge": "craft",

	// Magic
	"alchemy":   "alch",
	"alchemize": "alch",
	"alc":       "alch",
	"cast":      "alch",

	// Bank
	"store":    "deposit",
	"dep":      "deposit",
	"stash":    "deposit",
	"take":     "withdraw",
	"wd":       "withdraw",
	"fetch":    "withdraw",
	"retrieve": "withdraw",

	// Equipment
	"wear":   "equip",
	"wield":  "equip",
	"don":    "equip",
	"remove": "unequip",
	"doff":   "unequip",
	"gear":   "equipment",
	"worn":   "equipment",
	"eq":     "equipment",

	// Powerups
	"use": "activate",

	// Views
	"inv":      "inventory",
	"i":        "inventory",
	"b":        "bank",
	"stats":    "skills",
	"levels":   "skills",
	"xp":       "skills",
	"st":       "status",
	"me":       "status",
	"log":      "collection",
	"clog":     "collection",
	"h":        "help",
	"?":        "help",
	"commands": "help",
}

var prepositions = map[string]bool{
	"to": true, "from": true, "into": true, "in": true, "at": true, "on": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true, "some": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(input)
	words = expandMultiWordVerbs(words)

	verb := strings.ToLower(words[0])
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	if !verbs[verb] {
		if fixed := correctVerb(verb); fixed != "" {
			verb = fixed
		}
	}
	rest := stripArticles(words[1:])
	text := objectBeforePreposition(rest)

	count, rest := extractCount(rest)
	object := objectBeforePreposition(rest)

	return types.Intent{
		Verb:   verb,
		Object: object,
		Count:  count,
		Text:   text,
	}
}

// Known reports whether verb is a recognized command verb.
func Known(verb string) bool { return verbs[verb] }

// expandMultiWordVerbs handles "list rocks", "take off", "high alch" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}
	first, second := strings.ToLower(words[0]), strings.ToLower(words[1])

	switch first {
	case "list", "show", "view":
		switch second {
		case "rocks", "ores":
			return append([]string{"rocks"}, words[2:]...)
		case "recipes", "items", "craftables":
			return append([]string{"recipes"}, words[2:]...)
		case "alchemy", "alchables", "alch":
			return append([]string{"alchables"}, words[2:]...)
		case "inventory", "bank", "equipment", "skills", "status", "collection":
			return append([]string{second}, words[2:]...)
		}
	case "take":
		if second == "off" {
			return append([]string{"unequip"}, words[2:]...)
		}
	case "put":
		if second == "on" {
			return append([]string{"equip"}, words[2:]...)
		}
	case "high", "low":
		if second == "alch" || second == "alchemy" {
			return append([]string{"alch"}, words[2:]...)
		}
	case "turn", "switch":
		if second == "on" {
			return append([]string{"activate"}, words[2:]...)
		}
	case "collection":
		if second == "log" {
			return append([]string{"collection"}, words[2:]...)
		}
	}
	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[strings.ToLower(w)] {
			result = append(result, w)
		}
	}
	return result
}

// extractCount pulls a count from the first or last word: "mine 10 iron",
// "mine iron 10", "mine iron x10", "deposit all ore".
func extractCount(words []string) (int, []string) {
	if len(words) == 0 {
		return 0, words
	}
	if n, ok := parseCount(words[len(words)-1]); ok && len(words) > 1 {
		return n, words[:len(words)-1]
	}
	if n, ok := parseCount(words[0]); ok && len(words) > 1 {
		return n, words[1:]
	}
	return 0, words
}

func parseCount(w string) (int, bool) {
	w = strings.ToLower(w)
	if w == "all" {
		return All, true
	}
	w = strings.TrimPrefix(w, "x")
	w = strings.TrimSuffix(w, "x")
	n, err := strconv.Atoi(w)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// objectBeforePreposition returns the words before the first preposition.
// "deposit ore to bank" -> "ore".
func objectBeforePreposition(words []string) string {
	for i, w := range words {
		if i > 0 && prepositions[strings.ToLower(w)] {
			return strings.Join(words[:i], " ")
		}
	}
	return strings.Join(words, " ")
}

// correctVerb returns the closest known verb to a mistyped one, or "".
func correctVerb(verb string) string {
	if len(verb) < 3 {
		return ""
	}
	best, bestDist := "", -1
	for known := range verbs {
		dist := levenshtein.ComputeDistance(verb, known)
		if dist > levenshteinLimit(len(known)) {
			continue
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && known < best) {
			best, bestDist = known, dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
