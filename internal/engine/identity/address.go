package identity

import (
	"fmt"
	"strconv"

	"github.com/syntorio/synthid/internal/engine/dictionary"
	"github.com/syntorio/synthid/internal/engine/random"
	"github.com/syntorio/synthid/internal/errors"
)

// resolveRegion honors an explicitly requested region code when the
// dictionary knows it and falls back to a weighted draw otherwise.
func resolveRegion(regions []dictionary.Region, requested string, src *random.Source) (dictionary.Region, error) {
	if requested != "" {
		for _, region := range regions {
			if region.Code == requested {
				return region, nil
			}
		}
	}
	region, err := random.Weighted(src, regions)
	if err != nil {
		return dictionary.Region{}, errors.Wrap(err, "draw region")
	}
	return region, nil
}

// resolveCity prefers cities belonging to the resolved region and falls back
// to the full list when the dictionary has none for it.
func resolveCity(cities []dictionary.City, regionCode string, src *random.Source) (dictionary.City, error) {
	pool := make([]dictionary.City, 0, len(cities))
	for _, city := range cities {
		if city.Region == regionCode {
			pool = append(pool, city)
		}
	}
	if len(pool) == 0 {
		pool = cities
	}
	city, err := random.Weighted(src, pool)
	if err != nil {
		return dictionary.City{}, errors.Wrap(err, "draw city")
	}
	return city, nil
}

func drawAddress(region dictionary.Region, city dictionary.City, street dictionary.Street, src *random.Source) (Address, error) {
	house, err := drawHouse(src)
	if err != nil {
		return Address{}, err
	}
	apartment, err := drawApartment(src)
	if err != nil {
		return Address{}, err
	}
	postal, err := drawPostalCode(region.Code, src)
	if err != nil {
		return Address{}, err
	}

	return Address{
		Region:     region.Code,
		RegionName: region.Name,
		City:       city.Name,
		Street:     street.Name,
		House:      house,
		Apartment:  apartment,
		PostalCode: postal,
	}, nil
}

// drawHouse produces a plain number 80% of the time and a smaller number
// with a building letter otherwise.
func drawHouse(src *random.Source) (string, error) {
	if src.Next() < 0.8 {
		n, err := src.IntN(1, 201)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	}
	n, err := src.IntN(1, 51)
	if err != nil {
		return "", err
	}
	letter, err := src.IntN(0, 26)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d%c", n, 'A'+letter), nil
}

// drawApartment is empty 30% of the time, modeling private houses.
func drawApartment(src *random.Source) (string, error) {
	if src.Next() >= 0.7 {
		return "", nil
	}
	n, err := src.IntN(1, 201)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}

// drawPostalCode derives a 6-digit code from the numeric region code.
func drawPostalCode(regionCode string, src *random.Source) (string, error) {
	base, err := strconv.Atoi(regionCode)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf("region code %q is not numeric", regionCode))
	}
	suffix, err := src.IntN(0, 1000)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", base*1000+suffix), nil
}
