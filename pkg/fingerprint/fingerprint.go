// Package fingerprint deriva una identidad estable de dispositivo a partir de
// los metadatos de la conexión (User-Agent + IP de origen). El identificador
// resultante es la única llave de enlace hacia los registros de autorización
// de dispositivos; por eso debe ser determinista: mismo par (UA, IP) ⇒ mismo ID.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// UnknownIP se usa cuando no se pudo determinar la IP de origen. El ID sigue
// siendo determinista pero degrada a un bucket compartido para ese User-Agent.
const UnknownIP = "Unknown"

// DeviceID calcula el identificador del dispositivo: SHA-256 sobre la
// concatenación UA+IP, truncado a 32 caracteres hexadecimales.
func DeviceID(userAgent, ip string) string {
	if ip == "" {
		ip = UnknownIP
	}
	sum := sha256.Sum256([]byte(userAgent + ip))
	return hex.EncodeToString(sum[:])[:32]
}

// DeviceName clasifica el User-Agent en un nombre legible con la forma
// "<Tipo> <OS> - <Navegador>", por ejemplo "Móvil Android - Chrome".
func DeviceName(userAgent string) string {
	ua := strings.ToLower(userAgent)

	os := "Desconocido"
	switch {
	case strings.Contains(ua, "windows"):
		os = "Windows"
	case strings.Contains(ua, "mac os"):
		os = "Mac OS"
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "ios"), strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		os = "iOS"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	}

	// Edge antes que Chrome: los UA de Edge también contienen "chrome".
	// Safari solo si no aparece "chrome" (Chrome también anuncia "safari").
	browser := "Desconocido"
	switch {
	case strings.Contains(ua, "edge"):
		browser = "Edge"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	case strings.Contains(ua, "opera"):
		browser = "Opera"
	}

	tipo := "Computadora"
	switch {
	case strings.Contains(ua, "mobile"):
		tipo = "Móvil"
	case strings.Contains(ua, "tablet"):
		tipo = "Tablet"
	}

	return tipo + " " + os + " - " + browser
}

// Generate devuelve el par (deviceID, deviceName) para los metadatos dados.
func Generate(userAgent, ip string) (string, string) {
	return DeviceID(userAgent, ip), DeviceName(userAgent)
}
