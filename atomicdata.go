/*
 * atomicdata.go, part of gochem.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goChem is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package chem

import (
	"fmt"
	"strings"
)

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
	"B":  10.81,
	"Li": 6.94,
	"As": 74.92,
	"Ni": 58.69,
	"Cd": 112.41,
	"Hg": 200.59,
	"Pt": 195.08,
}

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
//Note that just common "bio-elements" are present
var symbolCovrad = map[string]float64{
	"H":  0.4,  // 0.31 I altered this one. Since H always has only one bond, it doesn't matter if I set a longer radius, the extra bonds will get eliminated later.
	"C":  0.76, //the sp3 radius
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Cu": 1.32,
	"Zn": 1.22,
	"Co": 1.5,  // hs
	"Fe": 1.52, //hs
	"Mn": 1.61, //hs
	"Cr": 1.39,
	"Si": 1.11,
	"Be": 0.96,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
	"B":  0.84,
	"Li": 1.28,
	"As": 1.19,
	"Ni": 1.24,
	"Cd": 1.44,
	"Hg": 1.32,
	"Pt": 1.36,
}

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556
//metal radii from 10.1023/A:1011625728803
//Note that just common "bio-elements" are present
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70,
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"Cr": 1.97,
	"Si": 2.10,
	"Be": 1.53,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
	"B":  1.92,
	"Li": 1.82,
	"As": 1.85,
	"Ni": 1.63,
	"Cd": 1.58,
	"Hg": 1.55,
	"Pt": 1.72,
}

//A map for checking that atoms don't
//have too many bonds. A value of 0 means
//undefined, i.e. that this atom shouldn't
//be checked for max bonds. I decided not to define it
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"N":  0, //undefined
	"P":  0,
	"S":  0,
	"Se": 0,
	"Be": 0,
	"F":  1,
	"Br": 1,
	"I":  1,
}

//Atomic numbers for the elements supported.
var symbolAtomicNumber = map[string]int{
	"H":  1,
	"D":  1,
	"Li": 3,
	"Be": 4,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Na": 11,
	"Mg": 12,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"K":  19,
	"Ca": 20,
	"Cr": 24,
	"Mn": 25,
	"Fe": 26,
	"Co": 27,
	"Ni": 28,
	"Cu": 29,
	"Zn": 30,
	"As": 33,
	"Se": 34,
	"Br": 35,
	"Cd": 48,
	"I":  53,
	"Pt": 78,
	"Hg": 80,
}

//Default valences, used to obtain the number of implicit hydrogens.
//Elements not in the map never get implicit hydrogens.
var symbolValence = map[string]int{
	"H":  1,
	"B":  3,
	"C":  4,
	"N":  3,
	"O":  2,
	"F":  1,
	"Si": 4,
	"P":  3,
	"S":  2,
	"Cl": 1,
	"As": 3,
	"Se": 2,
	"Br": 1,
	"I":  1,
}

var metals = map[string]bool{
	"Li": true, "Be": true, "Na": true, "Mg": true, "K": true, "Ca": true, "Cr": true, "Mn": true,
	"Fe": true, "Co": true, "Ni": true, "Cu": true, "Zn": true, "Cd": true, "Pt": true, "Hg": true,
}

var halogens = map[string]bool{"F": true, "Cl": true, "Br": true, "I": true}

//A map between 3-letters name for aminoacidic residues to the corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"CYX": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"HID": 'H',
	"HIE": 'H',
	"HIP": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
}

//AtomicNumber returns the atomic number for the element symbol, or 0 if the
//element is not supported.
func AtomicNumber(symbol string) int {
	return symbolAtomicNumber[symbol]
}

//Valence returns the default valence of the element, corrected by the formal charge.
//It returns 0 for elements that don't take implicit hydrogens.
func Valence(symbol string, formalCharge int) int {
	v, ok := symbolValence[symbol]
	if !ok {
		return 0
	}
	switch symbol {
	case "C", "Si":
		v -= abs(formalCharge)
	case "B":
		v -= formalCharge
	case "N", "P", "As", "O", "S", "Se":
		v += formalCharge
	default:
		v -= abs(formalCharge)
	}
	if v < 0 {
		return 0
	}
	return v
}

//IsMetal returns true if the symbol corresponds to a metal.
func IsMetal(symbol string) bool {
	return metals[symbol]
}

//IsHalogen returns true if the symbol corresponds to a halogen.
func IsHalogen(symbol string) bool {
	return halogens[symbol]
}

//IsAminoAcid returns true if the residue name is one of the standard amino acids
func IsAminoAcid(resname string) bool {
	_, ok := three2OneLetter[resname]
	return ok
}

//symbolFromName tries to guess a chemical element symbol from a PDB atom name. Mostly based on AMBER names.
//It only deals with some common bio-elements.
func symbolFromName(name string) (string, error) {
	symbol := ""
	if len(name) == 0 {
		return "", newCError("Empty atom name", "symbolFromName")
	}
	if len(name) == 4 || name[0] == 'H' { //I thiiink only Hs can have 4-char names in amber.
		symbol = "H"
	} else if name[0] == 'C' {
		switch name {
		case "CU":
			symbol = "Cu"
		case "CL":
			symbol = "Cl"
		case "CA0":
			symbol = "Ca"
		default:
			symbol = "C"
		}
	} else if name[0] == 'N' {
		if name == "NA" {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	} else if name[0] == 'O' {
		symbol = "O"
	} else if name[0] == 'P' {
		symbol = "P"
	} else if name[0] == 'S' {
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	} else if len(name) >= 2 && (name[0:2] == "ZN" || name[0:2] == "FE" || name[0:2] == "MG") {
		symbol = name[0:1] + strings.ToLower(name[1:2])
	}
	if symbol == "" {
		return symbol, newCError(fmt.Sprintf("Couldn't guess symbol from PDB name %s", name), "symbolFromName")
	}
	return symbol, nil
}

//normalizeSymbol returns the symbol with the standard capitalization (e.g. "CL" -> "Cl")
func normalizeSymbol(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[0:1]) + strings.ToLower(s[1:])
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
