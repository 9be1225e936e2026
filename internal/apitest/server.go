// Package apitest is an in-process fake of the Hermes REST API for
// integration-style tests: canned users, topic feeds with cursor
// pagination, a random-article queue, and like/interaction state, with
// per-route request counting so tests can assert exactly how many calls
// a controller made.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/strawberrySword/hermes/internal/domain"
)

// Server is a fake Hermes API backed by in-memory state. All exported
// mutators are safe for concurrent use with in-flight requests.
type Server struct {
	httpServer *httptest.Server

	mu           sync.Mutex
	token        string
	tokenUserID  string
	users        map[string]domain.User
	topics       []string
	pages        map[string][]domain.Page
	pageCursors  map[string]map[string]int
	randomQueue  []domain.Article
	likes        map[string]map[string]bool
	interactions map[string]int
	acceptCounts map[string]int
	requests     map[string]int
}

// New starts a fake API server and registers its shutdown with t.
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		users:        map[string]domain.User{},
		pages:        map[string][]domain.Page{},
		pageCursors:  map[string]map[string]int{},
		likes:        map[string]map[string]bool{},
		interactions: map[string]int{},
		acceptCounts: map[string]int{},
		requests:     map[string]int{},
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/user/random", s.handleRandomUser).Methods(http.MethodGet)
	r.HandleFunc("/api/user/{id}", s.handleUser).Methods(http.MethodGet)
	r.HandleFunc("/api/article", s.handleRandomArticle).Methods(http.MethodGet)
	r.HandleFunc("/api/articles/top-topics", s.requireAuth(s.handleTopics)).Methods(http.MethodGet)
	r.HandleFunc("/api/articles/like/count/{user_id}", s.requireAuth(s.handleLikedCount)).Methods(http.MethodGet)
	r.HandleFunc("/api/articles/like/{article_id}/{user_id}", s.requireAuth(s.handleLikeStatus)).Methods(http.MethodGet)
	r.HandleFunc("/api/articles/like/{article_id}/{user_id}", s.requireAuth(s.handleSetLike)).Methods(http.MethodPost, http.MethodDelete)
	r.HandleFunc("/api/interactions/{article_id}", s.requireAuth(s.handleInteraction)).Methods(http.MethodPost)
	r.HandleFunc("/api/articles/{user_id}/{cursor}", s.requireAuth(s.handlePersonalized)).Methods(http.MethodGet)
	r.HandleFunc("/api/articles/{topic}", s.requireAuth(s.handleArticles)).Methods(http.MethodGet)

	s.httpServer = httptest.NewServer(r)
	t.Cleanup(s.httpServer.Close)
	return s
}

// URL is the server's base URL.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// SetAuth configures the accepted bearer token and the user it
// represents. With an empty token, authenticated routes accept any
// request.
func (s *Server) SetAuth(token, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.tokenUserID = userID
}

// AddUser registers a login identity.
func (s *Server) AddUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
}

// SetTopics sets the ranked topic list served by top-topics.
func (s *Server) SetTopics(topics ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = topics
}

// AddPage appends a page to a topic feed. The page is addressed by the
// NextCursor of the page before it; the first page answers an empty
// cursor.
func (s *Server) AddPage(topic string, page domain.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cursor := ""
	if existing := s.pages[topic]; len(existing) > 0 {
		cursor = existing[len(existing)-1].NextCursor
	}
	if s.pageCursors[topic] == nil {
		s.pageCursors[topic] = map[string]int{}
	}
	s.pageCursors[topic][cursor] = len(s.pages[topic])
	s.pages[topic] = append(s.pages[topic], page)
}

// AddPersonalizedPage appends a page to a user's personalized feed. The
// first page answers cursor "0".
func (s *Server) AddPersonalizedPage(userID string, page domain.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := "user:" + userID
	cursor := "0"
	if existing := s.pages[key]; len(existing) > 0 {
		cursor = existing[len(existing)-1].NextCursor
	}
	if s.pageCursors[key] == nil {
		s.pageCursors[key] = map[string]int{}
	}
	s.pageCursors[key][cursor] = len(s.pages[key])
	s.pages[key] = append(s.pages[key], page)
}

// QueueRandom queues articles served one at a time by the random
// endpoint. The last article repeats once the queue drains.
func (s *Server) QueueRandom(articles ...domain.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.randomQueue = append(s.randomQueue, articles...)
}

// SetLiked seeds like state for (userID, articleID).
func (s *Server) SetLiked(userID, articleID string, liked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.likes[userID] == nil {
		s.likes[userID] = map[string]bool{}
	}
	if liked {
		s.likes[userID][articleID] = true
	} else {
		delete(s.likes[userID], articleID)
	}
}

// Liked reports the current like state for (userID, articleID).
func (s *Server) Liked(userID, articleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likes[userID][articleID]
}

// Interactions returns how many open interactions were recorded for an
// article.
func (s *Server) Interactions(articleID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interactions[articleID]
}

// Requests returns how many times a route was hit, keyed as
// "METHOD /path" with mux variables substituted, e.g.
// "GET /api/articles/tech".
func (s *Server) Requests(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[key]
}

func (s *Server) count(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.Method+" "+r.URL.Path]++
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()

		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				s.count(r)
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	s.count(r)
	s.mu.Lock()
	user, ok := s.users[mux.Vars(r)["id"]]
	s.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":"user not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, user)
}

func (s *Server) handleRandomUser(w http.ResponseWriter, r *http.Request) {
	s.count(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		writeJSON(w, user)
		return
	}
	http.Error(w, `{"error":"user not found"}`, http.StatusNotFound)
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	s.count(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := make([]map[string]string, 0, len(s.topics))
	for _, topic := range s.topics {
		ranked = append(ranked, map[string]string{"topic": topic})
	}
	writeJSON(w, ranked)
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	s.count(r)
	topic := mux.Vars(r)["topic"]
	cursor := r.URL.Query().Get("cursor")

	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.pageCursors[topic][cursor]
	if !ok {
		writeJSON(w, domain.Page{})
		return
	}
	writeJSON(w, s.pages[topic][idx])
}

func (s *Server) handlePersonalized(w http.ResponseWriter, r *http.Request) {
	s.count(r)
	vars := mux.Vars(r)
	key := "user:" + vars["user_id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.pageCursors[key][vars["cursor"]]
	if !ok {
		writeJSON(w, domain.Page{})
		return
	}
	writeJSON(w, s.pages[key][idx])
}

func (s *Server) handleRandomArticle(w http.ResponseWriter, r *http.Request) {
	s.count(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.randomQueue) == 0 {
		http.Error(w, `{"error":"no articles"}`, http.StatusNotFound)
		return
	}
	article := s.randomQueue[0]
	if len(s.randomQueue) > 1 {
		s.randomQueue = s.randomQueue[1:]
	}
	writeJSON(w, article)
}

func (s *Server) handleLikeStatus(w http.ResponseWriter, r *http.Request) {
	s.count(r)
	vars := mux.Vars(r)

	s.mu.Lock()
	liked := s.likes[vars["user_id"]][vars["article_id"]]
	s.mu.Unlock()
	if !liked {
		http.Error(w, `{"error":"not liked"}`, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleSetLike(w http.ResponseWriter, r *http.Request) {
	s.count(r)
	vars := mux.Vars(r)
	s.SetLiked(vars["user_id"], vars["article_id"], r.Method == http.MethodPost)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLikedCount(w http.ResponseWriter, r *http.Request) {
	s.count(r)
	userID := mux.Vars(r)["user_id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]int{"count": len(s.likes[userID]) + s.acceptCounts[userID]})
}

func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	s.count(r)
	s.mu.Lock()
	s.interactions[mux.Vars(r)["article_id"]]++
	s.acceptCounts[s.tokenUserID]++
	s.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
