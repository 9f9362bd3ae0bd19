package rest

import (
	"net/http"

	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/server/models"
	"github.com/dmitrijs2005/storyshare/internal/server/services"
	"github.com/gorilla/mux"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type storyCreatedResponse struct {
	Message string        `json:"message"`
	Story   *models.Story `json:"story"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Server is running"))
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(r.Context(), w, err, nil)
		return
	}

	if _, err := s.deps.Users.Signup(r.Context(), req.Email, req.Password); err != nil {
		s.fail(r.Context(), w, err, messages{common.ErrorValidation: "Email and password are required"})
		return
	}

	writeMessage(w, http.StatusCreated, "User created successfully")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(r.Context(), w, err, nil)
		return
	}

	res, err := s.deps.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(r.Context(), w, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(r.Context(), w, err, nil)
		return
	}

	c := &models.Contact{Name: req.Name, Email: req.Email, Subject: req.Subject, Message: req.Message}
	if err := s.deps.Contacts.Submit(r.Context(), c); err != nil {
		s.fail(r.Context(), w, err, nil)
		return
	}

	writeMessage(w, http.StatusCreated, "Message received successfully!")
}

func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	list, err := s.deps.Stories.List(r.Context(), userID)
	if err != nil {
		s.fail(r.Context(), w, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// storyInput reads the story form fields after the upload was received.
func storyInput(r *http.Request, upload string) services.StoryInput {
	return services.StoryInput{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Date:    r.FormValue("date"),
		Upload:  upload,
	}
}

func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	upload, err := s.deps.Uploader.Receive(r)
	if err != nil {
		s.fail(r.Context(), w, err, nil)
		return
	}

	story, err := s.deps.Stories.Create(r.Context(), userID, storyInput(r, upload))
	if err != nil {
		s.fail(r.Context(), w, err, messages{common.ErrorValidation: "All fields are required"})
		return
	}

	writeJSON(w, http.StatusCreated, storyCreatedResponse{Message: "Story added successfully", Story: story})
}

func (s *Server) handleUpdateStory(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	id := mux.Vars(r)["id"]

	upload, err := s.deps.Uploader.Receive(r)
	if err != nil {
		s.fail(r.Context(), w, err, nil)
		return
	}

	story, err := s.deps.Stories.Update(r.Context(), userID, id, storyInput(r, upload))
	if err != nil {
		s.fail(r.Context(), w, err, messages{
			common.ErrorValidation: "All fields are required to update the story",
			common.ErrorNotFound:   "Story not found or not authorized to update",
		})
		return
	}

	writeJSON(w, http.StatusOK, story)
}

func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	id := mux.Vars(r)["id"]

	if err := s.deps.Stories.Delete(r.Context(), userID, id); err != nil {
		s.fail(r.Context(), w, err, messages{common.ErrorNotFound: "Story not found or not authorized to delete"})
		return
	}

	writeMessage(w, http.StatusOK, "Story deleted")
}
