package handler

import (
	"github.com/Rrens/reservasi-bot/internal/api/response"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User-facing messages
const (
	msgChatFieldsRequired   = "sessionId dan message harus diisi"
	msgChatFieldsTooLong    = "sessionId atau message terlalu panjang"
	msgInvalidBody          = "Format permintaan tidak valid"
	msgGenericFailure       = response.MsgInternalError
	msgReservationNotSaved  = "Maaf, reservasi Anda belum tersimpan karena gangguan sistem. Silakan kirim ulang konfirmasi Anda (\"ya\")."
	msgReservationNotFound  = "Reservasi tidak ditemukan"
	msgReservationCancelled = "Reservasi berhasil dibatalkan"
	msgRouteNotFound        = "Endpoint tidak ditemukan"
	msgMethodNotAllowed     = "Metode tidak diizinkan"
	msgNotReady             = "database not ready"
)
