package errors

// Error code constants returned to API consumers.
// Format: CATEGORY_SPECIFIC_DETAIL. The channel maps these to copy.

const (
	// ==================== Identidad / documentos (DOCUMENT_) ====================
	DocumentInvalidUserID   = "DOCUMENT_INVALID_USER_ID"   // userId mal formado
	DocumentsMismatch       = "DOCUMENT_MISMATCH"          // RUT no coincide con el userId
	DocumentRUTNotNumeric   = "DOCUMENT_RUT_NOT_NUMERIC"   // RUT con caracteres no numéricos
	DocumentCINotNumeric    = "DOCUMENT_CI_NOT_NUMERIC"    // CI con caracteres no numéricos

	// ==================== Alta unipersonal (ONBOARDING_) ====================
	OnboardingAlreadyClient      = "ONBOARDING_ALREADY_CLIENT"      // el RUT ya es cliente del banco
	OnboardingWrongStatus        = "ONBOARDING_WRONG_STATUS"        // estado PROCESADO/ANULADO
	OnboardingFinalStatus        = "ONBOARDING_FINAL_STATUS"        // alta ya finalizada
	OnboardingCertificateExpired = "ONBOARDING_CERTIFICATE_EXPIRED" // certificado DGI vencido
	OnboardingNameNotAdmitted    = "ONBOARDING_NAME_NOT_ADMITTED"   // razón social no admitida
	OnboardingNotFound           = "ONBOARDING_NOT_FOUND"           // alta inexistente

	// ==================== Contactos (CONTACT_) ====================
	ContactEmptyMail          = "CONTACT_EMPTY_MAIL"           // mail vacío
	ContactInvalidMailPattern = "CONTACT_INVALID_MAIL_PATTERN" // mail con formato inválido
	ContactMailBlacklisted    = "CONTACT_MAIL_BLACKLISTED"     // dominio/casilla bloqueada
	ContactEmptyMobile        = "CONTACT_EMPTY_MOBILE"         // celular vacío
	ContactInvalidMobile      = "CONTACT_INVALID_MOBILE_PATTERN"
	ContactInvalidType        = "CONTACT_INVALID_TYPE" // tipo de contacto desconocido

	// ==================== Notificaciones (NOTIFICATION_) ====================
	NotificationMissingParam = "NOTIFICATION_MISSING_PARAM" // falta campo de plantilla
	NotificationSendFailed   = "NOTIFICATION_SEND_FAILED"   // fallo de envío SMTP

	// ==================== Autenticación (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // canal sin autenticar
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED"

	// ==================== Interno (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalDecryption    = "INTERNAL_DECRYPTION_ERROR"
)
