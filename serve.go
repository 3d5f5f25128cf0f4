package site

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/richeterre/richeterre.github.io/views"
)

// Server is the local preview server. It serves the published collection
// from the store rather than re-reading the content tree, and optionally
// exposes drafts behind a session login. Deployment stays a static host;
// this exists so authors can see the site (drafts included) before pushing.
type Server struct {
	cfg     SiteConfig
	echo    *echo.Echo
	store   *Store
	cache   *CollectionCache
	limiter *LoginLimiter
}

// NewServer creates a preview server over the store at cfg.DatabasePath.
func NewServer(cfg SiteConfig) (*Server, error) {
	cfg.setDefaults()
	if cfg.DraftsPassword != "" && cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SessionSecret is required when drafts are enabled")
	}
	store, err := NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &Server{
		cfg:     cfg,
		echo:    echo.New(),
		store:   store,
		cache:   NewCollectionCache(store, cfg.CacheTTL),
		limiter: NewLoginLimiter(5, time.Minute),
	}
	s.echo.HideBanner = true
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// Start listens on cfg.Addr until the server is closed.
func (s *Server) Start() error {
	if err := s.echo.Start(s.cfg.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

func (s *Server) draftsEnabled() bool {
	return s.cfg.DraftsPassword != ""
}

func (s *Server) setupRoutes() {
	e := s.echo

	e.Static("/public", s.cfg.StaticDir)
	e.Static("/css", s.cfg.StaticDir+"/css")
	e.GET("/robots.txt", s.handleRobots)
	e.GET("/sitemap.xml", s.handleSitemap)
	e.GET("/feed.xml", s.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", s.handleHome)
	e.GET("/blog/:slug/", s.handlePost)
	e.GET("/:slug/", s.handlePage)

	if s.draftsEnabled() {
		e.GET("/drafts/", s.handleDrafts)
		e.POST("/drafts/login/", s.handleDraftsLogin)
		e.POST("/drafts/logout/", handleDraftsLogout)
		e.GET("/drafts/:slug/", s.handleDraftDoc)
	}
}

// handleRobots generates robots.txt dynamically using the canonical URL.
func (s *Server) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /drafts/\n\nSitemap: %s/sitemap.xml\n", s.cfg.URL)
	return c.String(http.StatusOK, body)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (s *Server) handleSitemap(c echo.Context) error {
	coll, err := s.cache.Collection(false)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteSitemap(c.Response(), s.cfg, coll.Documents())
}

func (s *Server) handleFeed(c echo.Context) error {
	coll, err := s.cache.Collection(false)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteFeed(c.Response(), s.cfg, coll.Posts())
}

// handleHome serves the post listing, optionally filtered by tag.
func (s *Server) handleHome(c echo.Context) error {
	coll, err := s.cache.Collection(false)
	if err != nil {
		return err
	}
	tag := c.QueryParam("tag")
	var docs []views.Doc
	for _, d := range coll.Posts() {
		if tag != "" && !hasTag(d, tag) {
			continue
		}
		docs = append(docs, viewDoc(coll, d))
	}
	return render(c, views.Home(viewSite(s.cfg), docs, tag, coll.Tags()))
}

func (s *Server) handlePost(c echo.Context) error {
	coll, err := s.cache.Collection(false)
	if err != nil {
		return err
	}
	doc, err := coll.ByID(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return renderStatus(c, http.StatusNotFound, views.NotFound(viewSite(s.cfg)))
		}
		return err
	}
	// Slug aliases redirect to their target.
	if doc.AliasOf != "" {
		if target, err := coll.ByID(doc.AliasOf); err == nil {
			return c.Redirect(http.StatusMovedPermanently, target.Link())
		}
	}
	var prev, next *views.Doc
	if p, ok, err := coll.Previous(doc.Slug); err == nil && ok && p.Layout == LayoutPost {
		v := viewDoc(coll, p)
		prev = &v
	}
	if n, ok, err := coll.Next(doc.Slug); err == nil && ok && n.Layout == LayoutPost {
		v := viewDoc(coll, n)
		next = &v
	}
	allPosts := make([]views.Doc, 0, coll.Len())
	for _, p := range coll.Posts() {
		allPosts = append(allPosts, viewDoc(coll, p))
	}
	current := viewDoc(coll, doc)
	return render(c, views.Post(viewSite(s.cfg), current, prev, next, views.RelatedDocs(current, allPosts)))
}

func (s *Server) handlePage(c echo.Context) error {
	coll, err := s.cache.Collection(false)
	if err != nil {
		return err
	}
	doc, err := coll.ByID(c.Param("slug"))
	if err != nil || doc.Layout != LayoutPage {
		return renderStatus(c, http.StatusNotFound, views.NotFound(viewSite(s.cfg)))
	}
	return render(c, views.Page(viewSite(s.cfg), viewDoc(coll, doc)))
}

func (s *Server) handleDrafts(c echo.Context) error {
	if !isDraftsSession(c) {
		return render(c, views.DraftLogin(viewSite(s.cfg), false, csrfToken(c)))
	}
	coll, err := s.cache.Collection(true)
	if err != nil {
		return err
	}
	docs := make([]views.Doc, 0, coll.Len())
	for _, d := range coll.Documents() {
		docs = append(docs, viewDoc(coll, d))
	}
	return render(c, views.DraftList(viewSite(s.cfg), docs, csrfToken(c)))
}

func (s *Server) handleDraftsLogin(c echo.Context) error {
	if !s.limiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	if c.FormValue("password") == s.cfg.DraftsPassword {
		if err := setDraftsSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/drafts/")
	}
	return render(c, views.DraftLogin(viewSite(s.cfg), true, csrfToken(c)))
}

func handleDraftsLogout(c echo.Context) error {
	if err := clearDraftsSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/drafts/")
}

func (s *Server) handleDraftDoc(c echo.Context) error {
	if !isDraftsSession(c) {
		return c.Redirect(http.StatusSeeOther, "/drafts/")
	}
	coll, err := s.cache.Collection(true)
	if err != nil {
		return err
	}
	doc, err := coll.ByID(c.Param("slug"))
	if err != nil {
		return renderStatus(c, http.StatusNotFound, views.NotFound(viewSite(s.cfg)))
	}
	return render(c, views.Post(viewSite(s.cfg), viewDoc(coll, doc), nil, nil, nil))
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = renderStatus(c, http.StatusNotFound, views.NotFound(viewSite(s.cfg)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = renderStatus(c, code, views.ServerError(viewSite(s.cfg)))
		return
	}
	s.echo.DefaultHTTPErrorHandler(err, c)
}

func hasTag(d Document, tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// render writes a templ component as an HTTP 200 HTML response.
func render(c echo.Context, cmp templ.Component) error {
	return renderStatus(c, http.StatusOK, cmp)
}

// renderStatus writes a templ component with a specific HTTP status code.
func renderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}
