package webhttp

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

var (
	errEmptyBody   = errors.New("request body is empty")
	errInvalidJSON = errors.New("request body is not valid JSON")
	errMissingData = errors.New(`request body must contain a "data" object`)
)

func readBody(c *gin.Context, limit int64) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, errEmptyBody
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errEmptyBody
	}
	return body, nil
}

// dataObject returns the raw "data" member of a /predict_api body.
func dataObject(body []byte) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, errInvalidJSON
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsObject() {
		return nil, errMissingData
	}
	return []byte(data.Raw), nil
}
