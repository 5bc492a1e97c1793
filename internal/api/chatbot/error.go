package chatbot

import (
	"ShopAssistant/pkg/response"
	"net/http"
)

var (
	ErrEmptyMessage    = response.NewError(http.StatusBadRequest, "message cannot be empty")
	ErrMessageNotFound = response.NewError(http.StatusNotFound, "message not found")
	ErrProcessMessage  = response.NewError(http.StatusInternalServerError, "failed to process message")
	ErrGetHistory      = response.NewError(http.StatusInternalServerError, "failed to get chat history")
	ErrClearHistory    = response.NewError(http.StatusInternalServerError, "failed to clear chat history")
	ErrSubmitFeedback  = response.NewError(http.StatusInternalServerError, "failed to submit feedback")
)
