package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrInternalError = errors.New("Internal error")
	ErrUnknownTicker = errors.New("Unknown ticker")
	ErrUnknownReport = errors.New("Unknown report")
)

type apiResponse struct {
	Errors []string `json:"errors,omitempty"`
	Data   any      `json:"data,omitempty"`
}

func RespondOK(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, apiResponse{Data: obj})
}

func RespondNotFoundErr(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusNotFound, apiResponse{Errors: []string{err.Error()}})
}

func RespondInternalErr(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, apiResponse{Errors: []string{ErrInternalError.Error()}})
}
