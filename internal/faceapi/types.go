package faceapi

// Region is a detected facial area in pixel coordinates of the source image.
type Region struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// FacialAreas holds the detected regions for both verification inputs.
type FacialAreas struct {
	Img1 Region `json:"img1"`
	Img2 Region `json:"img2"`
}

// VerifyResult is the face service response for a verification request.
type VerifyResult struct {
	Verified         bool        `json:"verified"`
	Distance         float64     `json:"distance"`
	Threshold        float64     `json:"threshold"`
	Model            string      `json:"model"`
	DetectorBackend  string      `json:"detector_backend"`
	SimilarityMetric string      `json:"similarity_metric"`
	FacialAreas      FacialAreas `json:"facial_areas"`
}

// Match is one candidate ranked by a folder search.
type Match struct {
	Path      string  `json:"path"`
	Distance  float64 `json:"distance"`
	Threshold float64 `json:"threshold"`
	Verified  bool    `json:"verified"`
}

type verifyRequest struct {
	Img1            string `json:"img1_path"`
	Img2            string `json:"img2_path"`
	ModelName       string `json:"model_name"`
	DetectorBackend string `json:"detector_backend"`
}
