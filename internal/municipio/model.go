package municipio

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("registro não encontrado")
	ErrDuplicate = errors.New("informações já cadastradas para o município")
)

// Info guarda os dados manuais mantidos por município (relação 1-1).
type Info struct {
	ID              string    `json:"id"`
	MunicipioID     int       `json:"municipio_id"`
	PrefeitoNome    *string   `json:"prefeito_nome"`
	PrefeitoPartido *string   `json:"prefeito_partido"`
	PrefeitoTel     *string   `json:"prefeito_tel"`
	ViceNome        *string   `json:"vice_nome"`
	VicePartido     *string   `json:"vice_partido"`
	ViceTel         *string   `json:"vice_tel"`
	Votos2014       *int      `json:"votos_2014"`
	Votos2018       *int      `json:"votos_2018"`
	Votos2022       *int      `json:"votos_2022"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InfoCreate é o payload de criação de informações municipais.
type InfoCreate struct {
	MunicipioID     int     `json:"municipio_id"`
	PrefeitoNome    *string `json:"prefeito_nome"`
	PrefeitoPartido *string `json:"prefeito_partido"`
	PrefeitoTel     *string `json:"prefeito_tel"`
	ViceNome        *string `json:"vice_nome"`
	VicePartido     *string `json:"vice_partido"`
	ViceTel         *string `json:"vice_tel"`
	Votos2014       *int    `json:"votos_2014"`
	Votos2018       *int    `json:"votos_2018"`
	Votos2022       *int    `json:"votos_2022"`
}

// InfoUpdate aplica apenas os campos presentes.
type InfoUpdate struct {
	PrefeitoNome    *string `json:"prefeito_nome"`
	PrefeitoPartido *string `json:"prefeito_partido"`
	PrefeitoTel     *string `json:"prefeito_tel"`
	ViceNome        *string `json:"vice_nome"`
	VicePartido     *string `json:"vice_partido"`
	ViceTel         *string `json:"vice_tel"`
	Votos2014       *int    `json:"votos_2014"`
	Votos2018       *int    `json:"votos_2018"`
	Votos2022       *int    `json:"votos_2022"`
}

// Lideranca é um contato político vinculado a um município (relação 1-N).
type Lideranca struct {
	ID          string    `json:"id"`
	MunicipioID int       `json:"municipio_id"`
	Nome        string    `json:"nome"`
	Cargo       string    `json:"cargo"`
	Telefone    *string   `json:"telefone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LiderancaCreate é o payload de criação de contato.
type LiderancaCreate struct {
	MunicipioID int     `json:"municipio_id"`
	Nome        string  `json:"nome"`
	Cargo       string  `json:"cargo"`
	Telefone    *string `json:"telefone"`
}

// LiderancaUpdate aplica apenas os campos presentes.
type LiderancaUpdate struct {
	Nome     *string `json:"nome"`
	Cargo    *string `json:"cargo"`
	Telefone *string `json:"telefone"`
}
