package types

const (
	UPLOAD_FOLDER     = "nf example"
	UPLOAD_FILE_FIELD = "cover"
	UPLOAD_API_PATH   = "/api/upload"

	POST_FORM_FIELD_TITLE   = "title"
	POST_FORM_FIELD_CONTENT = "content"

	SESSION_COOKIE_NAME = "nf_session"

	CONTEXT_KEY_COVER_FILE = "coverFile"
	CONTEXT_KEY_POSTS      = "posts"
	CONTEXT_KEY_SESSION_ID = "sessionId"

	IMAGE_HOST_CLOUDINARY = "cloudinary"
	IMAGE_HOST_GCS        = "gcs"
	IMAGE_HOST_S3         = "s3"

	FIREBASE_STORAGE_DOWNLOAD_URL = "https://firebasestorage.googleapis.com/v0/b/"
)
