package musicutil

import (
	"regexp"
	"strconv"
	"strings"
)

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// noteLetterSemitone maps a base letter (including German "H" for B) to
// its semitone offset within an octave.
var noteLetterSemitone = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11, 'H': 11,
}

var plainIntRe = regexp.MustCompile(`^\d{1,3}$`)
var noteNameRe = regexp.MustCompile(`^([A-Ha-h])([#sSbB]?)(-?\d+)?$`)

// FormatNoteSharps formats a MIDI note number (0..127) using sharps,
// e.g. FormatNoteSharps(60) == "C3". Octave numbering follows spec
// §4.4: MIDI 0 == C-2.
func FormatNoteSharps(n int) string {
	if n < 0 || n > 127 {
		return ""
	}
	octave := n/12 - 2
	return sharpNames[n%12] + strconv.Itoa(octave)
}

// ParseNote accepts "C", "C#", "Db", the German "H" for B, a suffix
// octave such as "C-2".."G8", or a decimal/zero-padded integer 0..127.
// Matching is case-insensitive. Returns -1 if the input is not
// recognized.
func ParseNote(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1
	}

	if plainIntRe.MatchString(s) {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 || v > 127 {
			return -1
		}
		return v
	}

	m := noteNameRe.FindStringSubmatch(s)
	if m == nil {
		return -1
	}
	letter := byte(strings.ToUpper(m[1])[0])
	semitone, ok := noteLetterSemitone[letter]
	if !ok {
		return -1
	}

	accidental := strings.ToLower(m[2])
	switch accidental {
	case "#", "s":
		semitone++
	case "b":
		semitone--
	}
	semitone = ((semitone % 12) + 12) % 12

	octave := 3
	if m[3] != "" {
		v, err := strconv.Atoi(m[3])
		if err != nil {
			return -1
		}
		octave = v
	}

	midi := (octave+2)*12 + semitone
	if midi < 0 || midi > 127 {
		return -1
	}
	return midi
}
