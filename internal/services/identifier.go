package services

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"inventory/internal/models"
)

// maxGenerateAttempts caps every identifier probe loop. The reference
// behavior retried forever; a full id space should fail loudly instead.
const maxGenerateAttempts = 10000

// NormalizeName strips spaces, commas, periods, dashes and underscores and
// lower-cases, so "Digi-Key" and "digikey" compare equal.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case ' ', ',', '.', '-', '_':
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// titleCase capitalizes the first letter of each whitespace-separated word
// and lower-cases the rest, matching how user names are stored.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// generateUserID derives a user id from the first initial plus full last
// name, lower-cased. On collision it probes seed2, seed3, ... sequentially.
// Callers are responsible for the duplicate-name business guard; this only
// resolves id collisions.
func (s *inventoryService) generateUserID(tx *gorm.DB, first, last string) (string, error) {
	seed := strings.ToLower(string([]rune(first)[0]) + last)
	seed = strings.Join(strings.Fields(seed), "")

	taken, err := s.userRepo.Exists(tx, seed)
	if err != nil {
		return "", err
	}
	if !taken {
		return seed, nil
	}

	for n := 2; n < maxGenerateAttempts; n++ {
		candidate := seed + fmt.Sprint(n)
		taken, err := s.userRepo.Exists(tx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	log.Printf("[ERROR] generateUserID: no free id for seed %q after %d probes", seed, maxGenerateAttempts)
	return "", ErrGenerationExhausted
}

// resolveManufacturer finds the manufacturer whose normalized name matches,
// or creates one (name preserved verbatim, zero parts) and returns it.
func (s *inventoryService) resolveManufacturer(tx *gorm.DB, name string) (*models.Manufacturer, error) {
	existing, err := s.mfrRepo.List(tx)
	if err != nil {
		return nil, err
	}

	normalized := NormalizeName(name)
	for i := range existing {
		if NormalizeName(existing[i].MfrName) == normalized {
			return &existing[i], nil
		}
	}

	mfr := &models.Manufacturer{MfrName: name, NumberOfParts: 0}
	if err := s.mfrRepo.Create(tx, mfr); err != nil {
		return nil, err
	}
	log.Printf("[INFO] resolveManufacturer: created manufacturer %q (id=%d)", name, mfr.MfrID)
	return mfr, nil
}

// generateUPC composes zero-padded manufacturer id (3) + per-manufacturer
// sequence (3) + today as MMDDYY, always 12 digits. The sequence is one more
// than the manufacturer's current part count, computed inside the caller's
// transaction so it self-heals after deletions. If the composed code is taken
// or would exceed 12 digits, it falls back to uniform random 12-digit codes.
func (s *inventoryService) generateUPC(tx *gorm.DB, mfrID int) (string, error) {
	count, err := s.partRepo.CountByManufacturer(tx, mfrID)
	if err != nil {
		return "", err
	}
	sequence := count + 1

	code := fmt.Sprintf("%03d%03d%s", mfrID, sequence, s.now().Format("010206"))
	if len(code) == 12 {
		taken, err := s.partRepo.Exists(tx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code = fmt.Sprintf("%012d", rand.Int63n(1_000_000_000_000))
		taken, err := s.partRepo.Exists(tx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	log.Printf("[ERROR] generateUPC: no free code for mfr %d after %d attempts", mfrID, maxGenerateAttempts)
	return "", ErrGenerationExhausted
}

// normalizeUPC renders any caller-supplied numeric key as the stored 12-digit
// zero-padded form. Non-numeric input is returned trimmed and untouched.
func normalizeUPC(key string) string {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > 12 {
		return key
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return key
		}
	}
	return strings.Repeat("0", 12-len(key)) + key
}

// isNumeric reports whether the key looks like a part UPC rather than a user
// id. User ids always start with a letter, so this is unambiguous.
func isNumeric(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
