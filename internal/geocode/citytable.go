package geocode

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lon float64
}

// cityCentroids maps folded province names to their administrative center.
// Keys are post-fold ASCII spellings of all 81 Turkish provinces.
var cityCentroids = map[string]Coordinate{
	"ADANA":          {37.0000, 35.3213},
	"ADIYAMAN":       {37.7648, 38.2786},
	"AFYONKARAHISAR": {38.7507, 30.5567},
	"AGRI":           {39.7191, 43.0503},
	"AKSARAY":        {38.3687, 34.0370},
	"AMASYA":         {40.6499, 35.8353},
	"ANKARA":         {39.9334, 32.8597},
	"ANTALYA":        {36.8969, 30.7133},
	"ARDAHAN":        {41.1105, 42.7022},
	"ARTVIN":         {41.1828, 41.8183},
	"AYDIN":          {37.8560, 27.8416},
	"BALIKESIR":      {39.6484, 27.8826},
	"BARTIN":         {41.6344, 32.3375},
	"BATMAN":         {37.8812, 41.1351},
	"BAYBURT":        {40.2552, 40.2249},
	"BILECIK":        {40.0567, 30.0665},
	"BINGOL":         {38.8854, 40.4966},
	"BITLIS":         {38.3938, 42.1232},
	"BOLU":           {40.7392, 31.6089},
	"BURDUR":         {37.4613, 30.0665},
	"BURSA":          {40.1826, 29.0665},
	"CANAKKALE":      {40.1553, 26.4142},
	"CANKIRI":        {40.6013, 33.6134},
	"CORUM":          {40.5506, 34.9556},
	"DENIZLI":        {37.7765, 29.0864},
	"DIYARBAKIR":     {37.9144, 40.2306},
	"DUZCE":          {40.8438, 31.1565},
	"EDIRNE":         {41.6818, 26.5623},
	"ELAZIG":         {38.6810, 39.2264},
	"ERZINCAN":       {39.7500, 39.5000},
	"ERZURUM":        {39.9000, 41.2700},
	"ESKISEHIR":      {39.7767, 30.5206},
	"GAZIANTEP":      {37.0662, 37.3833},
	"GIRESUN":        {40.9128, 38.3895},
	"GUMUSHANE":      {40.4386, 39.5086},
	"HAKKARI":        {37.5833, 43.7333},
	"HATAY":          {36.4018, 36.3498},
	"IGDIR":          {39.9167, 44.0333},
	"ISPARTA":        {37.7648, 30.5566},
	"ISTANBUL":       {41.0082, 28.9784},
	"IZMIR":          {38.4192, 27.1287},
	"KAHRAMANMARAS":  {37.5858, 36.9371},
	"KARABUK":        {41.2061, 32.6204},
	"KARAMAN":        {37.1759, 33.2287},
	"KARS":           {40.6167, 43.1000},
	"KASTAMONU":      {41.3887, 33.7827},
	"KAYSERI":        {38.7312, 35.4787},
	"KILIS":          {36.7184, 37.1212},
	"KIRIKKALE":      {39.8468, 33.5153},
	"KIRKLARELI":     {41.7333, 27.2167},
	"KIRSEHIR":       {39.1425, 34.1709},
	"KOCAELI":        {40.8533, 29.8815},
	"KONYA":          {37.8667, 32.4833},
	"KUTAHYA":        {39.4167, 29.9833},
	"MALATYA":        {38.3552, 38.3095},
	"MANISA":         {38.6191, 27.4289},
	"MARDIN":         {37.3212, 40.7245},
	"MERSIN":         {36.8000, 34.6333},
	"MUGLA":          {37.2153, 28.3636},
	"MUS":            {38.9462, 41.7539},
	"NEVSEHIR":       {38.6939, 34.6857},
	"NIGDE":          {37.9667, 34.6833},
	"ORDU":           {40.9839, 37.8764},
	"OSMANIYE":       {37.0742, 36.2478},
	"RIZE":           {41.0201, 40.5234},
	"SAKARYA":        {40.6940, 30.4358},
	"SAMSUN":         {41.2867, 36.3300},
	"SANLIURFA":      {37.1591, 38.7969},
	"SIIRT":          {37.9333, 41.9500},
	"SINOP":          {42.0231, 35.1531},
	"SIRNAK":         {37.5164, 42.4611},
	"SIVAS":          {39.7477, 37.0179},
	"TEKIRDAG":       {40.9833, 27.5167},
	"TOKAT":          {40.3167, 36.5500},
	"TRABZON":        {41.0015, 39.7178},
	"TUNCELI":        {39.1079, 39.5401},
	"USAK":           {38.6823, 29.4082},
	"VAN":            {38.4891, 43.4089},
	"YALOVA":         {40.6500, 29.2667},
	"YOZGAT":         {39.8181, 34.8147},
	"ZONGULDAK":      {41.4564, 31.7987},
}

// LookupCity resolves a folded city name to its centroid.
func LookupCity(folded string) (Coordinate, bool) {
	c, ok := cityCentroids[folded]
	return c, ok
}
