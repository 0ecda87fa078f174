package apiserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/pkg/errors"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type ReqData struct {
	req   *JRPCRequest
	resCh chan *JRPCResponse
}

// Run starts web service of the apiserver
func (s *APIServer) Run(BindAddress string) error {
	s.setup.Do(s.route)
	s.log.WithField("bind", BindAddress).Info("api server is started")
	if err := s.e.Start(BindAddress); err != nil && err != http.ErrServerClosed {
		return errors.WithStack(err)
	}
	return nil
}

func (s *APIServer) route() {
	s.e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	s.e.POST("/api/endpoints/http", func(c echo.Context) error {
		defer c.Request().Body.Close()
		dec := json.NewDecoder(c.Request().Body)
		dec.UseNumber()

		var req JRPCRequest
		if err := dec.Decode(&req); err != nil {
			return c.JSON(http.StatusBadRequest, &JRPCResponse{
				JSONRPC: "2.0",
				Error:   ErrInvalidRequest.Error(),
			})
		}
		res := s.request(&req)
		if res == nil {
			return c.NoContent(http.StatusOK)
		}
		return c.JSON(http.StatusOK, res)
	})
	s.e.GET("/api/endpoints/websocket", func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
		if err != nil {
			return err
		}
		defer conn.Close()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return nil
				}
				return err
			}
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.UseNumber()

			var req JRPCRequest
			if err := dec.Decode(&req); err != nil {
				return err
			}
			res := s.request(&req)
			if res != nil {
				if err := conn.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
					return err
				}
				if err := conn.WriteJSON(res); err != nil {
					return err
				}
			}
		}
	})
	for i := 0; i < s.workers; i++ {
		go func() {
			for r := range s.reqCh {
				r.resCh <- s.handleJRPC(r.req)
			}
		}()
	}
}

func (s *APIServer) request(req *JRPCRequest) *JRPCResponse {
	resCh := make(chan *JRPCResponse, 1)
	s.reqCh <- &ReqData{
		req:   req,
		resCh: resCh,
	}
	return <-resCh
}

// JRPC provides the json rpc feature as a SubName.FunctionName methods
func (s *APIServer) JRPC(SubName string) (*JRPCSub, error) {
	s.Lock()
	defer s.Unlock()

	if _, has := s.subMap[SubName]; has {
		return nil, errors.Wrap(ErrExistSubName, SubName)
	}
	js := NewJRPCSub()
	s.subMap[SubName] = js
	return js, nil
}

func (s *APIServer) handleJRPC(req *JRPCRequest) *JRPCResponse {
	ls := strings.SplitN(req.Method, ".", 2)
	if len(ls) != 2 {
		if req.ID == nil {
			return nil
		}
		return &JRPCResponse{
			JSONRPC: req.JSONRPC,
			ID:      req.ID,
			Error:   ErrInvalidMethod.Error(),
		}
	}

	s.Lock()
	sub, has := s.subMap[ls[0]]
	s.Unlock()
	var fn Handler
	if has {
		sub.Lock()
		fn, has = sub.funcMap[ls[1]]
		sub.Unlock()
	}
	if !has {
		if req.ID == nil {
			return nil
		}
		return &JRPCResponse{
			JSONRPC: req.JSONRPC,
			ID:      req.ID,
			Error:   ErrInvalidMethod.Error(),
		}
	}

	ret, err := fn(req.ID, NewArgument(req.Params))
	if err != nil {
		s.log.WithError(err).WithField("method", req.Method).Debug("request failed")
	}
	if req.ID == nil {
		return nil
	}
	res := &JRPCResponse{
		JSONRPC: req.JSONRPC,
		ID:      req.ID,
	}
	if err != nil {
		res.Error = err.Error()
	} else {
		res.Result = ret
	}
	return res
}
