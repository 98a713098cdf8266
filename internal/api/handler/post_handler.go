package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gracechapel/content-api/internal/api/metrics"
	"github.com/gracechapel/content-api/internal/core/domain"
	"github.com/gracechapel/content-api/internal/core/ports"
)

// PostHandler handles HTTP requests for the post lifecycle and feeds.
type PostHandler struct {
	posts  ports.PostService
	notify ports.NotifyService
}

func NewPostHandler(posts ports.PostService, notify ports.NotifyService) *PostHandler {
	return &PostHandler{posts: posts, notify: notify}
}

// Create handles POST /v1/admin/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      savePostRequest  true  "Post details"
// @Success      201   {object}  savePostResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req savePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := h.posts.Create(c.Request().Context(), toSaveInput(req, identity))
	if err != nil {
		return err
	}
	metrics.PostsSavedTotal.WithLabelValues("create", req.Status).Inc()

	resp := savePostResponse{ID: id}
	if req.Announce && req.Status == string(domain.StatusPublished) {
		summary, err := h.announce(c, id)
		if err != nil {
			return err
		}
		resp.Announcement = summary
	}
	return c.JSON(http.StatusCreated, resp)
}

// Update handles PUT /v1/admin/posts/:id.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Post id"
// @Param        body  body      savePostRequest  true  "Post details"
// @Success      200   {object}  savePostResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	var req savePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if _, err := h.posts.Update(c.Request().Context(), id, toSaveInput(req, identity)); err != nil {
		return err
	}
	metrics.PostsSavedTotal.WithLabelValues("update", req.Status).Inc()

	resp := savePostResponse{ID: id}
	if req.Announce && req.Status == string(domain.StatusPublished) {
		summary, err := h.announce(c, id)
		if err != nil {
			return err
		}
		resp.Announcement = summary
	}
	return c.JSON(http.StatusOK, resp)
}

// announce fans the freshly published post out to subscribers. The save has
// already been persisted: an announce failure reaches the caller as an error
// without rolling the post back.
func (h *PostHandler) announce(c echo.Context, id string) (*announceSummary, error) {
	post, err := h.posts.Get(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if post.Publication.PublishedAt == nil {
		return nil, nil
	}

	start := time.Now()
	result, err := h.notify.Announce(c.Request().Context(), ports.AnnounceInput{
		PostID:      post.ID,
		Title:       post.Title,
		Content:     post.Content,
		Type:        post.Type,
		PublishedAt: *post.Publication.PublishedAt,
	})
	metrics.FanoutDuration.Observe(time.Since(start).Seconds())
	if result != nil {
		metrics.NoticesSentTotal.WithLabelValues("delivered").Add(float64(result.Delivered))
		metrics.NoticesSentTotal.WithLabelValues("failed").Add(float64(result.Failed))
	}
	if err != nil {
		return nil, err
	}

	return &announceSummary{
		ReceiptID:      result.ReceiptID,
		RecipientCount: result.RecipientCount,
		Delivered:      result.Delivered,
		Failed:         result.Failed,
	}, nil
}

// Get handles GET /v1/admin/posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200 {object}  postResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/admin/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.posts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// List handles GET /v1/admin/posts — the back-office listing.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        type    query     string  false  "Filter by type"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {array}   postResponse
// @Router       /v1/admin/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context(), ports.ListPostsFilter{
		Type:   domain.PostType(c.QueryParam("type")),
		Status: domain.PostStatus(c.QueryParam("status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// Delete handles DELETE /v1/admin/posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      204
// @Failure      404 {object}  errorResponse
// @Router       /v1/admin/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.posts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PromoteDue handles POST /v1/admin/posts/promote-due. The service keeps no
// scheduler: an external job calls this to flip due scheduled posts live.
//
// @Summary      Promote due scheduled posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  promoteResponse
// @Router       /v1/admin/posts/promote-due [post]
func (h *PostHandler) PromoteDue(c echo.Context) error {
	promoted, err := h.posts.PromoteDue(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return err
	}
	metrics.PostsPromotedTotal.Add(float64(promoted))
	return c.JSON(http.StatusOK, promoteResponse{Promoted: promoted})
}

// Feed handles GET /v1/posts — the public feed of published posts, newest
// publication first.
//
// @Summary      Public published feed
// @Tags         posts
// @Produce      json
// @Param        type  query     string  false  "Filter by type"
// @Success      200   {array}   postResponse
// @Router       /v1/posts [get]
func (h *PostHandler) Feed(c echo.Context) error {
	posts, err := h.posts.ListPublished(c.Request().Context(), domain.PostType(c.QueryParam("type")), 0)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

func toSaveInput(req savePostRequest, identity *domain.AdminIdentity) ports.SavePostInput {
	return ports.SavePostInput{
		Title:         req.Title,
		Content:       req.Content,
		Type:          domain.PostType(req.Type),
		Status:        domain.PostStatus(req.Status),
		ScheduledFor:  req.ScheduledFor,
		CoverImageURL: req.CoverImageURL,
		AuthorEmail:   identity.Email,
		AuthorName:    identity.DisplayName,
	}
}

func toPostResponses(posts []*domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}
