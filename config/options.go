// Package config is the option store the retro-shell interpreter (an
// external collaborator, not part of this core) turns typed commands into.
// It is deliberately small: validate against an enum's key list, refuse
// writes while the machine is powered on, and persist to disk as TOML.
package config

import (
	"os"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/pixelforge/amigacore/errors"
)

// Option names every configurable knob named in spec.md §6.
type Option string

// The option set. Not every Amiga option a real front-end would expose is
// here — only the ones spec.md §6 names plus the handful SPEC_FULL.md's
// domain-stack section requires a home for.
const (
	AgnusRevision  Option = "AGNUS_REVISION"
	DeniseRevision Option = "DENISE_REVISION"
	ChipRAM        Option = "CHIP_RAM"
	SlowRAM        Option = "SLOW_RAM"
	FastRAM        Option = "FAST_RAM"
	VideoFormat    Option = "VIDEO_FORMAT"
	DriveSpeed     Option = "DRIVE_SPEED"
	BankMap        Option = "BANK_MAP"
	UnmappedRead   Option = "UNMAPPED_READ"
	WarpMode       Option = "WARP_MODE"
	PointerDrop    Option = "POINTER_DROP_QUIRK"
)

// enumKeys lists, per option, the values Set will accept. An option not
// present here is OPT_UNSUPPORTED.
var enumKeys = map[Option][]string{
	AgnusRevision:  {"OCS", "ECS_1MB", "ECS_2MB"},
	DeniseRevision: {"OCS", "ECS"},
	ChipRAM:        {"256K", "512K", "1MB", "2MB"},
	SlowRAM:        {"0K", "256K", "512K", "1MB", "1.5MB"},
	FastRAM:        {"0K", "1MB", "2MB", "4MB", "8MB"},
	VideoFormat:    {"PAL", "NTSC"},
	DriveSpeed:     {"1X", "2X", "4X", "8X", "TURBO"},
	BankMap:        {"A500", "A1000", "A2000A", "A2000B"},
	UnmappedRead:   {"FLOATING", "ALL_ZERO", "ALL_ONE"},
	WarpMode:       {"OFF", "ALWAYS", "WHILE_LOADING"},
	PointerDrop:    {"ON", "OFF"},
}

// defaults mirror a stock A500.
var defaults = map[Option]string{
	AgnusRevision:  "OCS",
	DeniseRevision: "OCS",
	ChipRAM:        "512K",
	SlowRAM:        "0K",
	FastRAM:        "0K",
	VideoFormat:    "PAL",
	DriveSpeed:     "1X",
	BankMap:        "A500",
	UnmappedRead:   "FLOATING",
	WarpMode:       "OFF",
	PointerDrop:    "ON",
}

// Options is the option store. The zero value is not usable; use NewOptions.
type Options struct {
	mu       sync.Mutex
	poweredOn func() bool
	values   map[Option]string
}

// NewOptions is the preferred method of initialisation for the Options type.
// poweredOn is consulted on every Set call; a nil poweredOn behaves as if
// the machine is always powered off (used by tests and by the config loader
// itself, which must be able to populate defaults before anything is live).
func NewOptions(poweredOn func() bool) *Options {
	o := &Options{poweredOn: poweredOn, values: make(map[Option]string)}
	o.SetDefaults()
	return o
}

// SetDefaults resets every known option to its stock-A500 default,
// bypassing the powered-on lock (used at construction and by regression
// tests that need a known starting state).
func (o *Options) SetDefaults() {
	o.mu.Lock()
	defer o.mu.Unlock()
	for k, v := range defaults {
		o.values[k] = v
	}
}

// Set validates value against opt's enum key list and, if the machine is
// not powered on, stores it.
func (o *Options) Set(opt Option, value string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.poweredOn != nil && o.poweredOn() {
		return errors.Errorf(errors.OptLockedMsg, opt)
	}

	keys, ok := enumKeys[opt]
	if !ok {
		return errors.Errorf(errors.OptUnsupportedMsg, opt)
	}

	for _, k := range keys {
		if k == value {
			o.values[opt] = value
			return nil
		}
	}
	return errors.Errorf(errors.OptInvArgMsg, opt, value)
}

// Get returns the current value of opt, and whether opt is a known option.
func (o *Options) Get(opt Option) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.values[opt]
	return v, ok
}

// Keys returns the enum key list for opt, for CLI tab-completion and error
// messages. The returned slice is sorted for deterministic output.
func Keys(opt Option) []string {
	keys := append([]string(nil), enumKeys[opt]...)
	sort.Strings(keys)
	return keys
}

// tomlDoc is the on-disk shape: a flat string-to-string table, one entry per
// known option.
type tomlDoc struct {
	Options map[string]string `toml:"options"`
}

// Save persists the current option values to path as TOML.
func (o *Options) Save(path string) error {
	o.mu.Lock()
	doc := tomlDoc{Options: make(map[string]string, len(o.values))}
	for k, v := range o.values {
		doc.Options[string(k)] = v
	}
	o.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(doc)
}

// Load reads option values from path, validating each against its enum key
// list exactly as Set would (an unrecognised or invalid entry in the file
// is skipped rather than aborting the whole load, since a config file
// written by a newer version of this core may contain options this build
// does not know about).
func (o *Options) Load(path string) error {
	var doc tomlDoc
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for k, v := range doc.Options {
		opt := Option(k)
		keys, ok := enumKeys[opt]
		if !ok {
			continue
		}
		for _, valid := range keys {
			if valid == v {
				o.values[opt] = v
				break
			}
		}
	}
	return nil
}
