package devconnect

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strconv"
)

const gravatarBase = "https://www.gravatar.com/avatar/"

// AvatarOptions tune the gravatar image
type AvatarOptions struct {
	Size    int
	Rating  string
	Default string
}

// DefaultAvatarOptions is a 200px, pg rated, mystery-man fallback
var DefaultAvatarOptions = AvatarOptions{
	Size:    200,
	Rating:  "pg",
	Default: "mm",
}

// GravatarURL derives the avatar URL for email
func GravatarURL(email string, opts AvatarOptions) string {
	sum := md5.Sum([]byte(NormalizeEmail(email)))

	q := url.Values{}
	if opts.Size > 0 {
		q.Set("s", strconv.Itoa(opts.Size))
	}
	if opts.Rating != "" {
		q.Set("r", opts.Rating)
	}
	if opts.Default != "" {
		q.Set("d", opts.Default)
	}

	u := gravatarBase + hex.EncodeToString(sum[:])
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}
