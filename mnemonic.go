// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
	lang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrInvalidMnemonic is returned when a mnemonic fails validation: wrong
// word count, a word outside the active wordlist, or a checksum mismatch.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// NormalizeMnemonic collapses all whitespace between words to single
// spaces and lowercases the phrase. Wallet apps accept pasted phrases with
// stray newlines and tabs; validation should too.
func NormalizeMnemonic(mnemonic string) string {
	return strings.ToLower(strings.Join(strings.Fields(mnemonic), " "))
}

// ValidMnemonic reports whether the phrase is a well-formed BIP39 mnemonic
// of exactly 12 or 24 words with a valid embedded checksum. It is pure and
// never panics on malformed input; the caller decides whether an invalid
// phrase is fatal.
//
// Consumer wallet apps only generate 12 or 24 word phrases, so the other
// BIP39 lengths (15, 18, 21) are rejected here even though the standard
// allows them.
func ValidMnemonic(mnemonic string) bool {
	mnemonic = NormalizeMnemonic(mnemonic)
	words := len(strings.Fields(mnemonic))
	if words != 12 && words != 24 {
		return false
	}
	return bip39.IsMnemonicValid(mnemonic)
}

// MnemonicToSeed converts a validated mnemonic to the 64-byte BIP39 seed
// using PBKDF2-HMAC-SHA512 with 2048 iterations and an empty passphrase.
// The transform matches the standard bit for bit; the whole point of this
// tool is to reproduce exactly what other wallet applications derive.
//
// The returned seed is sensitive material. It must never be persisted,
// logged or transmitted.
func MnemonicToSeed(mnemonic string) ([]byte, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if !ValidMnemonic(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return seed, nil
}

// SetLanguage switches the active BIP39 wordlist. Only phrase validation
// is affected; the seed transform itself is language independent.
func SetLanguage(language string) error {
	list := getWordlist(language)
	if list == nil {
		return fmt.Errorf("this language is not supported")
	}
	bip39.SetWordList(list)
	return nil
}

func sanitizeLang(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

var wordLists = map[lang.Tag][]string{
	lang.Chinese:              wordlists.ChineseSimplified,
	lang.SimplifiedChinese:    wordlists.ChineseSimplified,
	lang.TraditionalChinese:   wordlists.ChineseTraditional,
	lang.Czech:                wordlists.Czech,
	lang.AmericanEnglish:      wordlists.English,
	lang.BritishEnglish:       wordlists.English,
	lang.English:              wordlists.English,
	lang.French:               wordlists.French,
	lang.Italian:              wordlists.Italian,
	lang.Japanese:             wordlists.Japanese,
	lang.Korean:               wordlists.Korean,
	lang.Spanish:              wordlists.Spanish,
	lang.EuropeanSpanish:      wordlists.Spanish,
	lang.LatinAmericanSpanish: wordlists.Spanish,
}

func getWordlist(language string) []string {
	language = sanitizeLang(language)
	tag := lang.Make(language)
	en := display.English.Languages() // default language name matcher
	for t := range wordLists {
		if sanitizeLang(en.Name(t)) == language {
			tag = t
			break
		}
	}
	if tag == lang.Und { // Unknown language
		return nil
	}
	base, _ := tag.Base()
	btag := lang.MustParse(base.String())
	wl := wordLists[tag]
	if wl == nil {
		return wordLists[btag]
	}
	return wl
}
