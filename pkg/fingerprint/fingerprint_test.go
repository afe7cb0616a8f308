package fingerprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/prestamos-pro/pkg/fingerprint"
)

const (
	uaChromeWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	uaSafariIphone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
)

// Mismo par (UA, IP) debe producir siempre el mismo identificador: es la única
// llave de enlace hacia los registros de autorización.
func TestDeviceID_Determinista(t *testing.T) {
	a := fingerprint.DeviceID(uaChromeWindows, "10.0.0.1")
	b := fingerprint.DeviceID(uaChromeWindows, "10.0.0.1")
	assert.Equal(t, a, b)
	require.Len(t, a, 32, "el ID debe truncarse a 32 caracteres hexadecimales")
	for _, c := range a {
		assert.Contains(t, "0123456789abcdef", string(c))
	}
}

func TestDeviceID_ParesDistintosProducenIDsDistintos(t *testing.T) {
	base := fingerprint.DeviceID(uaChromeWindows, "10.0.0.1")
	assert.NotEqual(t, base, fingerprint.DeviceID(uaChromeWindows, "10.0.0.2"), "IP distinta cambia el ID")
	assert.NotEqual(t, base, fingerprint.DeviceID(uaSafariIphone, "10.0.0.1"), "UA distinto cambia el ID")
}

// Sin IP se usa el placeholder "Unknown": determinista pero compartido.
func TestDeviceID_SinIP_FallbackUnknown(t *testing.T) {
	sin := fingerprint.DeviceID(uaChromeWindows, "")
	assert.Equal(t, fingerprint.DeviceID(uaChromeWindows, fingerprint.UnknownIP), sin)
	assert.NotEqual(t, fingerprint.DeviceID(uaChromeWindows, "10.0.0.1"), sin)
}

func TestDeviceName_Clasificacion(t *testing.T) {
	cases := []struct {
		name string
		ua   string
		want string
	}{
		{"chrome windows desktop", uaChromeWindows, "Computadora Windows - Chrome"},
		// Los UA de iPhone anuncian "like Mac OS X" y Mac OS tiene prioridad sobre iOS.
		{"safari iphone", uaSafariIphone, "Móvil Mac OS - Safari"},
		// Edge anuncia también "chrome"; Edge debe ganar.
		{"edge gana a chrome", "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0 Safari/537.36 Edge/120.0", "Computadora Windows - Edge"},
		{"firefox linux", "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", "Computadora Linux - Firefox"},
		{"chrome android mobile", "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Chrome/120.0 Mobile Safari/537.36", "Móvil Android - Chrome"},
		{"tablet android", "Mozilla/5.0 (Linux; Android 13; Tablet) AppleWebKit/537.36 Chrome/119.0 Safari/537.36", "Tablet Android - Chrome"},
		{"mac os safari", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 Version/17.0 Safari/605.1.15", "Computadora Mac OS - Safari"},
		{"desconocido total", "curl/8.4.0", "Computadora Desconocido - Desconocido"},
		{"app nativa ios", "PrestamosApp/2.1 (iOS 17.0; iPhone15,2) Mobile", "Móvil iOS - Desconocido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fingerprint.DeviceName(tc.ua))
		})
	}
}

func TestGenerate_DevuelveIDyNombre(t *testing.T) {
	id, name := fingerprint.Generate(uaChromeWindows, "192.168.1.50")
	assert.Equal(t, fingerprint.DeviceID(uaChromeWindows, "192.168.1.50"), id)
	assert.Equal(t, "Computadora Windows - Chrome", name)
}
