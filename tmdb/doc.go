// Package tmdb provides a client for The Movie Database (TMDB) v3 API.
//
// The client covers the read operations a media browser needs: movie and TV
// show details, the now playing and popular listings, and search. Requests
// are authenticated with a v4 read access token sent as a bearer token.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		os.Getenv("EIGA_TMDB_ACCESS_TOKEN"),
//		logger,
//		tmdb.WithDefaultLanguage("en-US"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	movie, err := client.GetMovie(ctx, 550)
//	if err != nil {
//		fmt.Println(tmdb.Describe(err))
//		return
//	}
//
// # Decoding
//
// Depending on the endpoint TMDB answers with a single object, a bare array
// or a {"results": [...]} wrapper. Decode tries each shape in that order.
// Media records decode leniently: a missing, null or malformed field takes
// its default ("", 0, false, empty slice) instead of failing the record.
//
// # Errors
//
// Errors match one of a flat set of sentinels (ErrInvalidURL, ErrNoData,
// ErrDecoding, ErrEncoding, ErrServer, ErrUnauthorized, ErrNotFound,
// ErrUnexpectedResponse, ErrUnknown). Non-2xx responses are returned as
// *APIError carrying the status code:
//
//	var apiErr *tmdb.APIError
//	if errors.As(err, &apiErr) && apiErr.IsServerError() {
//		// apiErr.StatusCode
//	}
//
// Nothing is retried.
package tmdb
