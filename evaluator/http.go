package evaluator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/amaarquadri/PerfectInformationGame/game"
)

// The wire format for a remote evaluator service. Each position is shipped
// as its flat encoding plus the legality mask over the move-encoding space,
// so the service can restrict and renormalize its policy head to legal
// moves before replying.
type evaluateRequest struct {
	Positions []encodedPosition `json:"positions"`
}

type encodedPosition struct {
	Encoding []float32 `json:"encoding"`
	MoveMask []bool    `json:"moveMask"`
	Terminal bool      `json:"terminal"`
}

type evaluateResponse struct {
	Predictions []Prediction `json:"predictions"`
}

// Client calls a remote evaluator over HTTP. The remote service owns the
// network weights; this side only ships encoded positions and consumes
// (policy, value) pairs.
type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string) *Client {
	return &Client{url: url, client: http.DefaultClient}
}

func (c *Client) Evaluate(batch []game.State) ([]Prediction, error) {
	request := evaluateRequest{Positions: make([]encodedPosition, len(batch))}
	for i, state := range batch {
		encodable, ok := state.(game.Encodable)
		if !ok {
			return nil, fmt.Errorf("position %d (%T) does not support encoding", i, state)
		}
		request.Positions[i] = encodedPosition{
			Encoding: encodable.Encode(),
			MoveMask: encodable.MoveMask(),
			Terminal: encodable.Terminal(),
		}
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode evaluate request: %w", err)
	}
	response, err := c.client.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("evaluator request failed: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("evaluator returned status %s", response.Status)
	}

	var decoded evaluateResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode evaluate response: %w", err)
	}
	if err := Validate(batch, decoded.Predictions); err != nil {
		return nil, err
	}
	return decoded.Predictions, nil
}

// EvaluateFunc computes predictions from encoded positions and their legal
// move masks, one prediction per input.
type EvaluateFunc func(encodings [][]float32, masks [][]bool) ([]Prediction, error)

// Handler exposes an evaluation function over HTTP using the same wire
// format the Client speaks. The serving side never sees game.State values,
// only the flat encodings and legality masks.
func Handler(evaluate EvaluateFunc) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/evaluate", func(w http.ResponseWriter, r *http.Request) {
		var request evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		encodings := make([][]float32, len(request.Positions))
		masks := make([][]bool, len(request.Positions))
		for i, position := range request.Positions {
			encodings[i] = position.Encoding
			masks[i] = position.MoveMask
		}
		predictions, err := evaluate(encodings, masks)
		if err != nil {
			log.Error().Err(err).Msg("evaluator failed")
			http.Error(w, "evaluation failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(evaluateResponse{Predictions: predictions}); err != nil {
			http.Error(w, "failed to encode predictions: "+err.Error(), http.StatusInternalServerError)
		}
	})
	return mux
}
