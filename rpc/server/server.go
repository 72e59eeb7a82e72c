package server

import (
	"io"
	"net/http"
	"time"

	"github.com/ValentinKolb/tomkv/rpc"
	"github.com/ValentinKolb/tomkv/rpc/common"
	"github.com/ValentinKolb/tomkv/rpc/serializer"
	"github.com/ValentinKolb/tomkv/tommgmt"
	"github.com/ValentinKolb/tomkv/tomstore"
)

// Server dispatches decoded Commands against a storage and answers with a
// Result, encoded with the same serializer the Command arrived in.
type Server struct {
	storage *tomstore.Storage[string, string]
	codec   serializer.Serializer
	logger  *common.Logger
	cfg     common.ServerConfig
}

// New constructs a Server over storage using codec for both directions of
// the wire protocol.
func New(storage *tomstore.Storage[string, string], codec serializer.Serializer, cfg common.ServerConfig) *Server {
	logger := common.NewLogger("rpc/server")
	if level, err := common.ParseLogLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return &Server{storage: storage, codec: codec, logger: logger, cfg: cfg}
}

// Handler builds the HTTP mux backing the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/command", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleCommand(w, r)
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleMetrics(w, r)
	})
	return mux
}

// ListenAndServe blocks, serving the storage over HTTP at cfg.Endpoint.
func (s *Server) ListenAndServe() error {
	s.logger.Infof("listening on %s", s.cfg.Endpoint)
	return http.ListenAndServe(s.cfg.Endpoint, s.Handler())
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	s.storage.WritePrometheus(w)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var cmd rpc.Command
	if err := s.codec.Deserialize(body, &cmd); err != nil {
		s.logger.Warningf("malformed command: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := s.dispatch(cmd)

	out, err := s.codec.Serialize(result)
	if err != nil {
		s.logger.Errorf("encoding result: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(out); err != nil {
		s.logger.Warningf("writing response: %v", err)
	}
}

func (s *Server) dispatch(cmd rpc.Command) rpc.Result {
	switch cmd.Verb {
	case rpc.VerbCreateTom:
		ok, err := tommgmt.CreateEmptyTom(s.cfg.DataDir, cmd.TomID)
		if err != nil {
			return errResult(err)
		}
		return rpc.Result{Bool: ok}

	case rpc.VerbDeleteTom:
		ok, err := tommgmt.RemoveTom(s.cfg.DataDir, cmd.TomID)
		if err != nil {
			return errResult(err)
		}
		return rpc.Result{Bool: ok}

	case rpc.VerbMount:
		err := s.storage.MountWithPriority(cmd.MountID, cmd.TomID, cmd.InternalPath, cmd.Priority)
		return errResult(err)

	case rpc.VerbUnmount:
		return rpc.Result{Bool: s.storage.Unmount(cmd.MountID)}

	case rpc.VerbMounts:
		mounts := s.storage.GetMounts(cmd.MountID)
		out := make([]rpc.MountInfo, len(mounts))
		for i, m := range mounts {
			out[i] = rpc.MountInfo{TomID: m.TomID, InternalPath: m.InternalPath}
		}
		return rpc.Result{Mounts: out}

	case rpc.VerbKey:
		keys, err := s.storage.Key(cmd.Path)
		if err != nil {
			return errResult(err)
		}
		return rpc.Result{Keys: keys}

	case rpc.VerbMapped:
		mappeds, err := s.storage.Mapped(cmd.Path)
		if err != nil {
			return errResult(err)
		}
		return rpc.Result{Mappeds: mappeds}

	case rpc.VerbValue:
		values, err := s.storage.Value(cmd.Path)
		if err != nil {
			return errResult(err)
		}
		out := make([]rpc.KV, len(values))
		for i, v := range values {
			out[i] = rpc.KV{Key: v.Key, Mapped: v.Mapped}
		}
		return rpc.Result{Values: out}

	case rpc.VerbSetKey:
		var n int
		var err error
		if cmd.AsNew {
			n, err = s.storage.SetKeyAsNew(cmd.Path, cmd.Key)
		} else {
			n, err = s.storage.SetKey(cmd.Path, cmd.Key)
		}
		return countResult(n, err)

	case rpc.VerbSetMapped:
		var n int
		var err error
		if cmd.AsNew {
			n, err = s.storage.SetMappedAsNew(cmd.Path, cmd.Mapped)
		} else {
			n, err = s.storage.SetMapped(cmd.Path, cmd.Mapped)
		}
		return countResult(n, err)

	case rpc.VerbSetValue:
		var n int
		var err error
		if cmd.AsNew {
			n, err = s.storage.SetValueAsNew(cmd.Path, cmd.Key, cmd.Mapped)
		} else {
			n, err = s.storage.SetValue(cmd.Path, cmd.Key, cmd.Mapped)
		}
		return countResult(n, err)

	case rpc.VerbInsert:
		var ok bool
		var err error
		if cmd.LifetimeSec > 0 {
			ok, err = s.storage.InsertWithLifetime(cmd.Path, cmd.Key, cmd.Mapped, time.Duration(cmd.LifetimeSec)*time.Second)
		} else {
			ok, err = s.storage.Insert(cmd.Path, cmd.Key, cmd.Mapped)
		}
		if err != nil {
			return errResult(err)
		}
		return rpc.Result{Bool: ok}

	case rpc.VerbRemove:
		ok, err := s.storage.Remove(cmd.Path)
		if err != nil {
			return errResult(err)
		}
		return rpc.Result{Bool: ok}

	default:
		return rpc.Result{Error: "unknown verb: " + string(cmd.Verb)}
	}
}

func errResult(err error) rpc.Result {
	if err != nil {
		return rpc.Result{Error: err.Error()}
	}
	return rpc.Result{}
}

func countResult(n int, err error) rpc.Result {
	if err != nil {
		return rpc.Result{Error: err.Error()}
	}
	return rpc.Result{Count: n}
}
