package apiserver

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo"
	"github.com/sirupsen/logrus"
)

// APIServer provides json rpc over http and websocket
type APIServer struct {
	sync.Mutex
	e       *echo.Echo
	subMap  map[string]*JRPCSub
	reqCh   chan *ReqData
	setup   sync.Once
	workers int
	log     *logrus.Entry
}

// NewAPIServer returns a APIServer
func NewAPIServer() *APIServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	s := &APIServer{
		e:       e,
		subMap:  map[string]*JRPCSub{},
		reqCh:   make(chan *ReqData),
		workers: 50,
		log:     logrus.WithField("module", "apiserver"),
	}
	return s
}

// Name returns the name of the service
func (s *APIServer) Name() string {
	return "farms.apiserver"
}

// ServeHTTP serves the endpoints without binding a port
func (s *APIServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.setup.Do(s.route)
	s.e.ServeHTTP(w, r)
}

// Close stops the web service
func (s *APIServer) Close(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
