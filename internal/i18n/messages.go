package i18n

import "github.com/bcexpress/tracking-api/internal/constants"

var messages = map[string]map[string]string{
	constants.LocaleIDID: {
		"error.internal":                "Terjadi kesalahan internal",
		"error.bad_request":             "Permintaan tidak valid",
		"error.unauthorized":            "Tidak terautentikasi",
		"error.forbidden":               "Akses ditolak",
		"error.not_found":               "Data tidak ditemukan",
		"error.fields_required":         "Nomor AWB, status, dan lokasi wajib diisi",
		"error.status_invalid":          "Status pengiriman tidak valid",
		"error.coordinates_invalid":     "Latitude dan longitude harus diisi bersamaan",
		"error.shipment_not_found":      "Pengiriman tidak ditemukan",
		"error.shipment_update_failed":  "Gagal memperbarui status pengiriman",
		"error.history_fetch_failed":    "Gagal memuat riwayat pengiriman",
		"error.tracking_failed":         "Gagal melacak pengiriman",
		"error.booking_not_found":       "Booking tidak ditemukan",
		"error.booking_resolved":        "Booking sudah diproses",
		"error.booking_fetch_failed":    "Gagal memuat data booking",
		"error.booking_verify_failed":   "Gagal memverifikasi booking",
		"error.booking_reject_failed":   "Gagal menolak booking",
		"error.reject_reason_required":  "Alasan penolakan wajib diisi",
		"error.manifest_insert_failed":  "Booking terverifikasi, tetapi gagal membuat entri manifest cabang",
		"error.scan_conflict":           "Resi sedang diproses kurir lain, coba lagi",
		"error.scan_debounced":          "Resi baru saja discan, dilewati",
		"error.scan_failed":             "Gagal memproses scan",
		"error.timeout_retry":           "Waktu operasi habis, silakan coba lagi",
		"error.invalid_credentials":     "Username atau password salah",
		"error.user_disabled":           "Akun dinonaktifkan",
		"error.login_failed":            "Gagal masuk, coba lagi",
		"error.password_change_failed":  "Gagal mengubah password",
		"error.token_invalid":           "Token tidak valid",
		"error.token_revoked":           "Token sudah tidak berlaku",
		"error.auth_header_missing":     "Header otorisasi tidak ditemukan",
		"error.auth_header_invalid":     "Format header otorisasi tidak valid",
		"error.jwt_secret_missing":      "Konfigurasi JWT belum diatur",
		"error.login_too_many":          "Terlalu banyak percobaan login, coba lagi dalam %d detik",
		"error.rate_limited":            "Terlalu banyak permintaan, coba lagi dalam %d detik",
		"error.rate_limit_unavailable":  "Layanan pembatasan permintaan tidak tersedia",
		"error.captcha_required":        "Captcha wajib diisi",
		"error.captcha_invalid":         "Captcha tidak valid",
		"error.captcha_config_invalid":  "Konfigurasi captcha tidak valid",
		"error.captcha_generate_failed": "Gagal membuat captcha",
		"error.captcha_verify_failed":   "Gagal memverifikasi captcha",
		"error.upload_file_missing":     "File tidak ditemukan dalam permintaan",
		"error.upload_awb_required":     "Nomor AWB wajib diisi",
		"error.upload_invalid":          "File tidak memenuhi syarat unggah",
		"error.upload_failed":           "Gagal mengunggah file",
		"error.user_id_invalid":         "ID pengguna tidak valid",
		"error.user_id_type_invalid":    "Tipe ID pengguna tidak valid",
		"error.booking_id_invalid":      "ID booking tidak valid",
		"error.awb_required":            "Nomor AWB wajib diisi",
	},
	constants.LocaleEnUS: {
		"error.internal":                "Internal server error",
		"error.bad_request":             "Invalid request",
		"error.unauthorized":            "Unauthorized",
		"error.forbidden":               "Forbidden",
		"error.not_found":               "Not found",
		"error.fields_required":         "AWB number, status, and location are required",
		"error.status_invalid":          "Invalid shipment status",
		"error.coordinates_invalid":     "Latitude and longitude must be provided together",
		"error.shipment_not_found":      "Shipment not found",
		"error.shipment_update_failed":  "Failed to update shipment status",
		"error.history_fetch_failed":    "Failed to load shipment history",
		"error.tracking_failed":         "Failed to track shipment",
		"error.booking_not_found":       "Booking not found",
		"error.booking_resolved":        "Booking has already been resolved",
		"error.booking_fetch_failed":    "Failed to load bookings",
		"error.booking_verify_failed":   "Failed to verify booking",
		"error.booking_reject_failed":   "Failed to reject booking",
		"error.reject_reason_required":  "Rejection reason is required",
		"error.manifest_insert_failed":  "Booking verified, but creating the branch manifest entry failed",
		"error.scan_conflict":           "AWB is being handled by another courier, try again",
		"error.scan_debounced":          "AWB was just scanned, skipped",
		"error.scan_failed":             "Failed to process scan",
		"error.timeout_retry":           "Operation timed out, please retry",
		"error.invalid_credentials":     "Invalid username or password",
		"error.user_disabled":           "Account is disabled",
		"error.login_failed":            "Login failed, try again",
		"error.password_change_failed":  "Failed to change password",
		"error.token_invalid":           "Invalid token",
		"error.token_revoked":           "Token is no longer valid",
		"error.auth_header_missing":     "Authorization header is missing",
		"error.auth_header_invalid":     "Invalid authorization header format",
		"error.jwt_secret_missing":      "JWT secret is not configured",
		"error.login_too_many":          "Too many login attempts, try again in %d seconds",
		"error.rate_limited":            "Too many requests, try again in %d seconds",
		"error.rate_limit_unavailable":  "Rate limit backend unavailable",
		"error.captcha_required":        "Captcha is required",
		"error.captcha_invalid":         "Invalid captcha",
		"error.captcha_config_invalid":  "Invalid captcha configuration",
		"error.captcha_generate_failed": "Failed to generate captcha",
		"error.captcha_verify_failed":   "Failed to verify captcha",
		"error.upload_file_missing":     "No file found in the request",
		"error.upload_awb_required":     "AWB number is required",
		"error.upload_invalid":          "File does not meet the upload requirements",
		"error.upload_failed":           "File upload failed",
		"error.user_id_invalid":         "Invalid user ID",
		"error.user_id_type_invalid":    "Invalid user ID type",
		"error.booking_id_invalid":      "Invalid booking ID",
		"error.awb_required":            "AWB number is required",
	},
}
