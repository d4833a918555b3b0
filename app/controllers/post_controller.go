package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"oasis/app/auth"
	"oasis/app/metrics"
	"oasis/app/services"
)

// PostController handles the landing page, post detail and submissions.
type PostController struct {
	postService *services.PostService
}

func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles the landing page: every post with its author, no pagination.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{
		"title":     "index",
		"posts":     posts,
		"logged_in": auth.StateFrom(r.Context()).Authenticated(),
	})
}

// SubmissionForm serves the submission page data. The guard has already run;
// an anonymous request never reaches this handler.
func (pc *PostController) SubmissionForm(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]any{
		"title":     "Submit a Post",
		"logged_in": true,
	})
}

// Create records a submission for the authenticated user.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	}
	if err := decodeBody(r, &input, func(r *http.Request) {
		input.Title = r.FormValue("title")
		input.Link = r.FormValue("link")
	}); err != nil {
		sendError(w, r, err)
		return
	}

	owner := auth.StateFrom(r.Context()).Identity
	post, err := pc.postService.CreatePost(r.Context(), owner.UserID, input.Title, input.Link)
	if err != nil {
		sendError(w, r, err)
		return
	}
	metrics.PostsCreatedTotal.Inc()

	if wantsJSON(r) {
		sendJSON(w, http.StatusCreated, map[string]any{"id": post.ID})
		return
	}
	http.Redirect(w, r, "/post/"+strconv.FormatInt(post.ID, 10), http.StatusSeeOther)
}

// Show handles the post detail page: the post, its author and the ordered
// comment forest.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["post_id"], 10, 64)
	if err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid post id"})
		return
	}

	view, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{
		"title":     view.Post.Title,
		"post":      view.Post,
		"comments":  view.Comments,
		"logged_in": auth.StateFrom(r.Context()).Authenticated(),
	})
}
