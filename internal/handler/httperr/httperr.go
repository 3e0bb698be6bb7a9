package httperr

import (
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ctxRequestIDKey matches the key the logging middleware stores the id under.
const ctxRequestIDKey = "request_id"

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail    any    `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func NewResponse(c *gin.Context, status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	if id, ok := c.Get(ctxRequestIDKey); ok {
		resp.RequestID, _ = id.(string)
	}
	return resp
}

// AbortWithError keeps err on the gin context for the request log and
// answers with msg; the client never sees err itself.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := NewResponse(c, status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
