package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	easyjson "github.com/mailru/easyjson"

	"rsakeygen/internal/api/keysdto"
	"rsakeygen/internal/keypair"
)

const maxBodyBytes = 64 << 10

func readBody(res http.ResponseWriter, req *http.Request) ([]byte, error) {
	var buf bytes.Buffer
	// читаем тело запроса
	if _, err := buf.ReadFrom(http.MaxBytesReader(res, req.Body, maxBodyBytes)); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return buf.Bytes(), nil
}

func writeJSON(res http.ResponseWriter, status int, v easyjson.Marshaler) {
	body, err := easyjson.Marshal(v)
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	_, _ = res.Write(body)
}

func writeError(res http.ResponseWriter, status int, msg string) {
	writeJSON(res, status, keysdto.ErrorResponse{Error: msg})
}

// MakeRSAKeys godoc
// @Summary      Generate an RSA key pair
// @Description  Returns a fresh PKCS#1 PEM key pair. Nothing is stored server side.
// @Tags         keys
// @Accept       json
// @Produce      json
// @Param        request  body      keysdto.KeyPairRequest  true  "Key size in bits"
// @Success      200      {object}  keysdto.KeyPairResponse
// @Failure      400      {object}  keysdto.ErrorResponse
// @Failure      422      {object}  keysdto.ErrorResponse
// @Router       /api/make_rsa_keys [post]
func (h *handlerService) MakeRSAKeys(res http.ResponseWriter, req *http.Request) {
	body, err := readBody(res, req)
	if err != nil {
		writeError(res, http.StatusBadRequest, err.Error())
		return
	}

	var in keysdto.KeyPairRequest
	// десериализуем JSON в KeyPairRequest
	if err = easyjson.Unmarshal(body, &in); err != nil {
		writeError(res, http.StatusBadRequest, err.Error())
		return
	}

	priv, pub, err := h.commands.MakeRSAKeysContext(req.Context(), in.KeySize)
	if err != nil {
		writeError(res, http.StatusUnprocessableEntity, err.Error())
		return
	}

	out := keysdto.KeyPairResponse{
		PrivateKeyPEM: priv,
		PublicKeyPEM:  pub,
	}
	if out.Fingerprint, err = keypair.Fingerprint(pub); err != nil {
		writeError(res, http.StatusInternalServerError, err.Error())
		return
	}
	if in.IncludeJWK {
		if out.PublicJWK, err = keypair.PublicJWK(pub); err != nil {
			writeError(res, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(res, http.StatusOK, out)
}
