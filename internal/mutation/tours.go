package mutation

import "github.com/alexanderramin/showrunner/internal/domain"

// AddTour appends a tour.
func AddTour(st domain.State, t domain.Tour) domain.State {
	st.Tours = appendItem(st.Tours, t)
	return st
}

// UpdateTour replaces the tour returned by fn. Unknown IDs yield domain.ErrNotFound.
func UpdateTour(st domain.State, id string, fn func(domain.Tour) (domain.Tour, error)) (domain.State, error) {
	tours, found, err := replaceByID(st.Tours, tourID, id, fn)
	if !found {
		return st, domain.NotFound("tour", id)
	}
	if err != nil {
		return st, err
	}
	st.Tours = tours
	return st, nil
}

// EditTourDetails overwrites the editable tour header fields and keeps the rest.
func EditTourDetails(t domain.Tour, artist, name, start, end string) domain.Tour {
	t.ArtistName = artist
	t.TourName = name
	t.StartDate = start
	t.EndDate = end
	return t
}

// SignIn records personID as the current user.
func SignIn(st domain.State, personID string) domain.State {
	st.CurrentUserID = personID
	return st
}

// SignOut clears the current user and tour selection.
func SignOut(st domain.State) domain.State {
	st.CurrentUserID = ""
	st.SelectedTourID = ""
	return st
}

// SelectTour records the tour the session is working on. An empty ID clears it.
func SelectTour(st domain.State, tourID string) domain.State {
	st.SelectedTourID = tourID
	return st
}
