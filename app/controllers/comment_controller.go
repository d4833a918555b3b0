package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"oasis/app/auth"
	"oasis/app/metrics"
	"oasis/app/services"
)

// CommentController handles comment creation on a post.
type CommentController struct {
	commentService *services.CommentService
}

func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Create attaches a comment, optionally as a reply, to the post named in the
// URL. The guard has already resolved the owner.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(mux.Vars(r)["post_id"], 10, 64)
	if err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid post id"})
		return
	}

	var input struct {
		Body     string `json:"body"`
		ParentID *int64 `json:"parent_id"`
	}
	if err := decodeBody(r, &input, func(r *http.Request) {
		input.Body = r.FormValue("body")
		if raw := r.FormValue("parent_id"); raw != "" {
			if parent, err := strconv.ParseInt(raw, 10, 64); err == nil {
				input.ParentID = &parent
			}
		}
	}); err != nil {
		sendError(w, r, err)
		return
	}

	owner := auth.StateFrom(r.Context()).Identity
	comment, err := cc.commentService.CreateComment(r.Context(), owner.UserID, postID, input.Body, input.ParentID)
	if err != nil {
		sendError(w, r, err)
		return
	}
	metrics.CommentsCreatedTotal.Inc()

	if wantsJSON(r) {
		sendJSON(w, http.StatusCreated, map[string]any{"id": comment.ID})
		return
	}
	http.Redirect(w, r, "/post/"+strconv.FormatInt(postID, 10), http.StatusSeeOther)
}
