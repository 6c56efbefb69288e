// Package share builds social share links for board records and hands them
// to an opener.
package share

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/erazemk/oglasna/internal/model"
)

// Supported platforms.
const (
	Facebook  = "facebook"
	Instagram = "instagram"
)

// Platforms lists every supported platform.
var Platforms = []string{Facebook, Instagram}

// ErrUnknownPlatform is returned for platforms without a share URL.
var ErrUnknownPlatform = errors.New("unknown share platform")

// Supported reports whether platform has a share URL.
func Supported(platform string) bool {
	for _, p := range Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

// BuildURL returns the platform share URL for pageURL with text as the
// quoted summary.
func BuildURL(platform, pageURL, text string) (string, error) {
	page := encodeComponent(pageURL)
	quote := encodeComponent(text)

	switch platform {
	case Facebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + page + "&quote=" + quote, nil
	case Instagram:
		return "https://www.instagram.com/?url=" + page + "&title=" + quote, nil
	default:
		return "", ErrUnknownPlatform
	}
}

// encodeComponent percent-encodes s for use as a query value, with spaces
// as %20 rather than +.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Opener opens a URL in a new browsing context.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, url string) error {
	return f(ctx, url)
}

// Lookup resolves share summaries from the persisted collections.
type Lookup interface {
	SummaryAt(ctx context.Context, kind model.Kind, index int) (string, bool)
	SummaryByID(ctx context.Context, kind model.Kind, id string) (string, bool)
}

// Dispatcher shares board records.
type Dispatcher struct {
	lookup Lookup
}

// NewDispatcher creates a Dispatcher resolving records through l.
func NewDispatcher(l Lookup) *Dispatcher {
	return &Dispatcher{lookup: l}
}

// Share opens the share URL of the record at index in kind's persisted
// collection. A stale index is a silent no-op.
func (d *Dispatcher) Share(ctx context.Context, kind model.Kind, index int, platform, pageURL string, o Opener) error {
	if !Supported(platform) {
		return ErrUnknownPlatform
	}
	text, ok := d.lookup.SummaryAt(ctx, kind, index)
	if !ok {
		return nil
	}
	return open(ctx, o, platform, pageURL, text)
}

// ShareByID opens the share URL of the record with the given id. A stale id
// is a silent no-op.
func (d *Dispatcher) ShareByID(ctx context.Context, kind model.Kind, id, platform, pageURL string, o Opener) error {
	if !Supported(platform) {
		return ErrUnknownPlatform
	}
	text, ok := d.lookup.SummaryByID(ctx, kind, id)
	if !ok {
		return nil
	}
	return open(ctx, o, platform, pageURL, text)
}

// Link returns the share URL of the record with the given id. ok is false
// when the record no longer exists.
func (d *Dispatcher) Link(ctx context.Context, kind model.Kind, id, platform, pageURL string) (link string, ok bool, err error) {
	if !Supported(platform) {
		return "", false, ErrUnknownPlatform
	}
	text, ok := d.lookup.SummaryByID(ctx, kind, id)
	if !ok {
		return "", false, nil
	}
	link, err = BuildURL(platform, pageURL, text)
	return link, err == nil, err
}

func open(ctx context.Context, o Opener, platform, pageURL, text string) error {
	u, err := BuildURL(platform, pageURL, text)
	if err != nil {
		return err
	}
	return o.Open(ctx, u)
}
