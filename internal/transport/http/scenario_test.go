package httptransport

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eidhandler "eidreader/internal/eid/handler"
	"eidreader/pkg/testutil"
)

const droppedCard = `<?xml version="1.0" encoding="UTF-8"?>
<eid>
	<identity nationalnumber="93122788811" dateofbirth="19931227" gender="male" title="" specialstatus="NO_STATUS">
		<name>Dupont</name>
		<firstname>Jean Paul</firstname>
		<nationality>Belg</nationality>
		<placeofbirth>Liège</placeofbirth>
		<photo>/9j/4AAQ</photo>
	</identity>
	<address>
		<streetandnumber>Rue de la Loi 16</streetandnumber>
		<zip>1000</zip>
		<municipality>Bruxelles</municipality>
	</address>
</eid>`

func TestDropScenarios(t *testing.T) {
	testutil.Given(t, "a running drop target", func(t *testing.T) {
		router := newTestRouter(t)

		testutil.When(t, "a card document is dropped as text", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewDropRequest(t, "text/plain", droppedCard))

			ok := testutil.Then(t, "the drop is accepted", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rr.Code)
			})
			if !ok {
				return
			}

			testutil.And(t, "the formatted record is returned", func(t *testing.T) {
				resp := testutil.UnmarshalResponse[eidhandler.DropResponse](t, rr)
				assert.True(t, resp.Complete)
				assert.Equal(t, "Jean", resp.Record.Forename)
				assert.Equal(t, "Paul", resp.Record.SecondName)
				assert.Equal(t, "93.12.27-888.11", resp.Record.NISS)
				assert.Equal(t, "1993/12/27", resp.Record.Birthday)
				assert.Equal(t, "1000", resp.Record.PostalCode)
				assert.Equal(t, "NO_STATUS", resp.Record.SpecialTitle)
				assert.Equal(t, "", resp.Record.Title)
			})
		})

		testutil.When(t, "something that is not a card is dropped", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewDropRequest(t, "", "hello there"))

			testutil.Then(t, "an empty, incomplete record is returned", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rr.Code)
				resp := testutil.UnmarshalResponse[eidhandler.DropResponse](t, rr)
				assert.False(t, resp.Complete)
				assert.True(t, resp.Record.IsEmpty())
			})
		})

		testutil.When(t, "a card document is followed by stray text", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewDropRequest(t, "application/xml", droppedCard+"\nstray selection"))

			testutil.Then(t, "nothing is read from it", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rr.Code)
				resp := testutil.UnmarshalResponse[eidhandler.DropResponse](t, rr)
				assert.False(t, resp.Complete)
				assert.True(t, resp.Record.IsEmpty())
			})
		})

		testutil.When(t, "nothing is dropped", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewDropRequest(t, "text/plain", ""))

			testutil.Then(t, "the drop is rejected", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
			})
		})
	})
}
