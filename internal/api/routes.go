package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/review-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/review-agent/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	root := new(restful.WebService)

	root.Path("/")

	root.
		Route(root.GET("/").
			To(handler.Greeting).
			Doc("Greeting").
			Produces(MIME_TEXT).
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Returns(200, "OK", nil))

	// Health endpoint
	root.
		Route(root.GET("/health").
			To(handler.Health).
			Doc("Health check").
			Produces(restful.MIME_JSON).
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	container.Add(root)

	ws := new(restful.WebService)

	ws.
		Path("/ai").
		Consumes(restful.MIME_JSON, MIME_TEXT, MIME_FORM, restful.MIME_OCTET).
		Produces(MIME_TEXT, restful.MIME_JSON)

	ws.Route(reviewRoute(ws, "/review", "Review a code snippet", handler))
	ws.Route(reviewRoute(ws, "/get-review", "Review a code snippet (legacy path)", handler))

	container.Add(ws)
}

func reviewRoute(ws *restful.WebService, path string, doc string, handler *Handler) *restful.RouteBuilder {
	return ws.POST(path).
		To(handler.Review).
		Doc(doc).
		Notes("Send {\"prompt\": \"...\"} as JSON, or the raw snippet with any other content type. "+
			"The review is returned as text/plain unless the request accepts application/json.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"review"}).
		Reads(models.ReviewRequest{}).
		Writes(models.ReviewResponse{}).
		Returns(200, "OK", models.ReviewResponse{}).
		Returns(400, "Invalid prompt", models.ReviewResponse{}).
		Returns(413, "Request body too large", middleware.ErrorResponse{}).
		Returns(429, "AI quota exceeded", models.ReviewResponse{}).
		Returns(500, "Model not found or unexpected failure", models.ReviewResponse{}).
		Returns(502, "Empty response from the AI service", models.ReviewResponse{}).
		Returns(503, "AI service unavailable", models.ReviewResponse{}).
		Returns(504, "AI service timed out", models.ReviewResponse{})
}
