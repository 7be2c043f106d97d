package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/shared/middleware"
)

// Handler serves GraphQL over HTTP. POST bodies may carry any operation;
// GET only runs queries.
type Handler struct {
	executor *Executor
}

func NewHandler(executor *Executor) *Handler {
	return &Handler{executor: executor}
}

// RegisterRoutes mounts /graphql and the playground page
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/graphql", h.Serve)
	r.GET("/graphql", h.Serve)
	r.GET("/playground", gin.WrapF(playground.Handler("Catalog GraphQL", "/graphql")))
}

func (h *Handler) Serve(c *gin.Context) {
	var req Request
	allowMutations := false

	switch c.Request.Method {
	case http.MethodPost:
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, Response{Errors: []*gqlerrors.QueryError{
				newError(CodeBadUserInput, "request body must be a JSON object with a query"),
			}})
			return
		}
		allowMutations = true
	default:
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if vars := c.Query("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				c.JSON(http.StatusBadRequest, Response{Errors: []*gqlerrors.QueryError{
					newError(CodeBadUserInput, "variables must be a JSON object"),
				}})
				return
			}
		}
	}

	resp := h.executor.Execute(c.Request.Context(), req, allowMutations)
	if !resp.Executed() {
		log.Debug().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("operation", req.OperationName).
			Int("status", resp.Status).
			Int("errors", len(resp.Errors)).
			Msg("GraphQL request rejected")
		if resp.Status == http.StatusMethodNotAllowed {
			c.Header("Allow", http.MethodPost)
		}
	}

	c.JSON(resp.Status, resp)
}
