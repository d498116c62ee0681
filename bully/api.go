package bully

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// ServeAPI exposes the node's status over HTTP for operators, the same
// read-only surface the raft prototype had. Blocks like ListenAndServe.
func (n *Node) ServeAPI(port int) error {
	r := mux.NewRouter()
	sr := r.PathPrefix("/api").Subrouter()
	sr.Path("/status").Methods("GET").HandlerFunc(n.handleStatus)

	log.Infof("status api listening on :%d", port)

	return http.ListenAndServe(fmt.Sprintf(":%d", port), r)
}

func (n *Node) handleStatus(w http.ResponseWriter, r *http.Request) {
	s := n.Status()

	log.Infof("%s status requested by %s", s.ID, r.RemoteAddr)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s); err != nil {
		log.Errorf("writing status: %v", err)
	}
}
