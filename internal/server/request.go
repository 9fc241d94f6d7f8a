package server

import (
	"fmt"
	"math"
	"net/http"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/mdlive/internal/errors"
)

type renderRequest struct {
	Text string
}

type keydownRequest struct {
	Text string
	Key  string

	// Selection offsets count runes. When absent the cursor sits at the
	// end of Text.
	HasSelection   bool
	SelectionStart int
	SelectionEnd   int
}

func readRenderRequest(w http.ResponseWriter, r *http.Request) (renderRequest, error) {
	body, err := readBody(w, r)
	if err != nil {
		return renderRequest{}, err
	}
	if !gjson.ValidBytes(body) {
		return renderRequest{}, apierrors.NewBadRequest("invalid JSON")
	}

	text, err := stringField(gjson.GetBytes(body, "text"), "text")
	if err != nil {
		return renderRequest{}, err
	}
	return renderRequest{Text: text}, nil
}

func readKeydownRequest(w http.ResponseWriter, r *http.Request) (keydownRequest, error) {
	body, err := readBody(w, r)
	if err != nil {
		return keydownRequest{}, err
	}
	if !gjson.ValidBytes(body) {
		return keydownRequest{}, apierrors.NewBadRequest("invalid JSON")
	}

	fields := gjson.GetManyBytes(body, "text", "key", "selection_start", "selection_end")

	var req keydownRequest
	if req.Text, err = stringField(fields[0], "text"); err != nil {
		return keydownRequest{}, err
	}
	if req.Key, err = stringField(fields[1], "key"); err != nil {
		return keydownRequest{}, err
	}

	start, end := fields[2], fields[3]
	if start.Exists() || end.Exists() {
		if start.Type != gjson.Number || end.Type != gjson.Number {
			return keydownRequest{}, apierrors.NewBadRequest("selection_start and selection_end must be numbers")
		}
		limit := utf8.RuneCountInString(req.Text)
		if req.SelectionStart, err = offsetField(start, "selection_start", limit); err != nil {
			return keydownRequest{}, err
		}
		if req.SelectionEnd, err = offsetField(end, "selection_end", limit); err != nil {
			return keydownRequest{}, err
		}
		req.HasSelection = true
	}
	return req, nil
}

// offsetField requires a whole number of runes within [0, limit].
func offsetField(v gjson.Result, name string, limit int) (int, error) {
	n := v.Float()
	if n != math.Trunc(n) || n < 0 || n > float64(limit) {
		return 0, apierrors.NewBadRequest(fmt.Sprintf("%s must be an integer between 0 and %d", name, limit))
	}
	return int(n), nil
}

// stringField requires a present JSON string. An explicit null reads as "".
func stringField(v gjson.Result, name string) (string, error) {
	switch v.Type {
	case gjson.String:
		return v.String(), nil
	case gjson.Null:
		if !v.Exists() {
			return "", apierrors.NewBadRequest(name + " is required")
		}
		return "", nil
	default:
		return "", apierrors.NewBadRequest(name + " must be a string")
	}
}
