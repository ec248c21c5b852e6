package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	configs "github.com/avvvet/tarot-frames/configs"
	"github.com/avvvet/tarot-frames/internal/framesvc/chain"
	"github.com/avvvet/tarot-frames/internal/framesvc/frame"
	"github.com/avvvet/tarot-frames/internal/framesvc/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	flow      *frame.Flow
	selector  *service.Selector
	cards     *service.CardService
	mint      *service.MintService
	reveal    *service.RevealService
	readings  *service.ReadingService
	assetsDir string
}

func NewHandler(flow *frame.Flow, selector *service.Selector, cards *service.CardService,
	mint *service.MintService, reveal *service.RevealService, readings *service.ReadingService,
	assetsDir string) *Handler {
	return &Handler{
		flow:      flow,
		selector:  selector,
		cards:     cards,
		mint:      mint,
		reveal:    reveal,
		readings:  readings,
		assetsDir: assetsDir,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (rs *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "frame service is running",
		Code:    http.StatusOK,
		Data:    map[string]string{"instance": configs.GetInstanceId()},
	})
}

func (h *Handler) render(w http.ResponseWriter, step frame.Step, st frame.State) {
	if err := h.flow.Render(w, step, st); err != nil {
		log.Errorf("Error rendering frame %s: %s", step, err)
		h.CreateResponse(w, Response{Message: "frame render failed", Code: http.StatusInternalServerError, Error: err.Error()})
	}
}

func (h *Handler) StartFrame(w http.ResponseWriter, r *http.Request) {
	h.render(w, frame.StepStart, frame.State{})
}

func (h *Handler) CardSelectFrame(w http.ResponseWriter, r *http.Request) {
	h.render(w, frame.StepSelect, frame.State{
		TokenID: h.selector.Next(),
		Price:   h.mint.PriceETH(),
	})
}

// MintTransaction answers the "Mint and Reveal" transaction button.
func (h *Handler) MintTransaction(w http.ResponseWriter, r *http.Request) {
	tokenID, err := strconv.Atoi(r.URL.Query().Get("tokenId"))
	if err != nil || tokenID < 0 {
		tokenID = h.selector.Next()
	}

	desc, err := h.mint.BuildMint(int64(tokenID))
	if err != nil {
		log.Errorf("Error building mint for token %d: %s", tokenID, err)
		h.CreateResponse(w, Response{Message: "mint unavailable", Code: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	log.Infof("mint transaction prepared for token %d on %s", tokenID, desc.CAIP2())
	if err := frame.WriteTransaction(w, desc); err != nil {
		log.Errorf("Error writing mint transaction: %s", err)
	}
}

func (h *Handler) CardRevealFrame(w http.ResponseWriter, r *http.Request) {
	msg, err := frame.ParseMessage(r)
	if err != nil {
		h.CreateResponse(w, Response{Message: "invalid frame message", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	res, err := h.reveal.Reveal(r.Context(), msg.UntrustedData.TransactionID)
	switch {
	case errors.Is(err, service.ErrInvalidTxHash):
		h.render(w, frame.StepFailure, frame.State{Message: "Mint your reading to reveal your card."})
		return
	case errors.Is(err, chain.ErrEventNotFound):
		log.Warnf("reveal without purchase: %s", err)
		h.render(w, frame.StepFailure, frame.State{Message: "No card was minted in this transaction."})
		return
	case err != nil:
		log.Errorf("Error revealing tx %s: %s", msg.UntrustedData.TransactionID, err)
		h.CreateResponse(w, Response{Message: "reveal failed", Code: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	if selected := chi.URLParam(r, "id"); selected != "" && selected != res.Purchase.TokenID.String() {
		log.Warnf("selected card %s but tx %s minted token %s", selected, msg.UntrustedData.TransactionID, res.Purchase.TokenID)
	}

	h.render(w, frame.StepReveal, frame.State{
		TokenID: int(res.Purchase.TokenID.Int64()),
		Card:    res.Card,
	})
}

// CardReadingFrame is the shareable frame embedded in casts.
func (h *Handler) CardReadingFrame(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.render(w, frame.StepFailure, frame.State{Message: "This reading does not exist."})
		return
	}

	h.render(w, frame.StepReading, frame.State{
		TokenID: index,
		Card:    h.cards.GetCardByIndex(r.Context(), index),
	})
}

func (h *Handler) CardImage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.CreateResponse(w, Response{Message: "invalid card index", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	card := h.cards.GetCardByIndex(r.Context(), index)
	if card == nil || card.ImageURL == "" {
		h.CreateResponse(w, Response{Message: "card not found", Code: http.StatusNotFound})
		return
	}

	http.Redirect(w, r, card.ImageURL, http.StatusFound)
}

func (h *Handler) WelcomeImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, filepath.Join(h.assetsDir, "card-back.png"))
}

func (h *Handler) ListReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := h.readings.ListReadings(r.Context(), r.URL.Query().Get("wallet"))
	if errors.Is(err, service.ErrInvalidWallet) {
		h.CreateResponse(w, Response{Message: "invalid wallet", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}
	if err != nil {
		log.Errorf("Error listing readings: %s", err)
		h.CreateResponse(w, Response{Message: "unable to list readings", Code: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: readings})
}
