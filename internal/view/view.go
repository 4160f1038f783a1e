// Package view renders the HTML fragments served by the content API.
package view

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/msomdec/rms-content/internal/domain"
)

// SlideImagePath is the public URL prefix of slide images.
const SlideImagePath = "/img/slides/"

// RenderString renders c to a string, for APIs that return markup inside a
// JSON payload.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func slideElementID(s domain.Slide) string {
	return "slide-" + strconv.FormatInt(s.ID, 10)
}

// pageIDValue leaves the field blank for a new article.
func pageIDValue(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
