package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ChannelSuffixSize é o tamanho do sufixo aleatório dos canais de tempo real
const ChannelSuffixSize = 6

// GenerateID gera um identificador alfanumérico com o tamanho informado
func GenerateID(size int) (string, error) {
	return gonanoid.Generate(idAlphabet, size)
}
