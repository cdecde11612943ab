package repository

import "errors"

// ErrNotFound lo devuelven las implementaciones cuando el documento
// pedido no existe, sin importar el backend (pgx.ErrNoRows o
// mongo.ErrNoDocuments quedan traducidos aquí).
var ErrNotFound = errors.New("record not found")
